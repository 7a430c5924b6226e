package service

import "io"

// FileStore is the part of the media store the services write to.
type FileStore interface {
	Save(subdir, filename string, r io.Reader) (string, error)
	Remove(rel string) error
}

// Notifier sends best-effort workflow e-mails. Implementations never fail the caller.
type Notifier interface {
	ManuscriptPublished(authorEmail, authorName, title, publication string)
	ContactReceived(from, subject, body string)
}
