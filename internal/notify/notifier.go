package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// sendTimeout bounds one delivery attempt, dial included.
const sendTimeout = 5 * time.Second

// Notifier composes the workflow e-mails and delivers them in the background.
// Delivery failures are logged and never returned, so a slow or broken SMTP
// server cannot hold up or fail a workflow step.
type Notifier struct {
	mailer Mailer
	admins []string
	log    *slog.Logger
	wg     sync.WaitGroup
}

func NewNotifier(mailer Mailer, adminEmails []string, log *slog.Logger) *Notifier {
	admins := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.TrimSpace(e); e != "" {
			admins = append(admins, e)
		}
	}
	return &Notifier{mailer: mailer, admins: admins, log: log}
}

// ManuscriptPublished tells the author their manuscript is out.
func (n *Notifier) ManuscriptPublished(authorEmail, authorName, title, publication string) {
	if authorEmail == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nyour manuscript %q has been published", authorName, title)
	if publication != "" {
		fmt.Fprintf(&b, " in %q", publication)
	}
	b.WriteString(".\n\nThe editorial office\n")

	n.send([]string{authorEmail}, "Your manuscript has been published", b.String())
}

// ContactReceived forwards a new contact message to the administrators.
func (n *Notifier) ContactReceived(from, subject, body string) {
	if len(n.admins) == 0 {
		return
	}
	text := fmt.Sprintf("New contact message from %s\n\nSubject: %s\n\n%s\n", from, subject, body)
	n.send(n.admins, "New contact message: "+subject, text)
}

// Wait blocks until every queued message has been handed to the mailer or
// ctx is done, whichever comes first.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) send(to []string, subject, body string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.mailer.Send(ctx, to, subject, body); err != nil {
			n.log.Warn("mail_send_failed", "subject", subject, "recipients", len(to), "error", err)
			return
		}
		n.log.Debug("mail_sent", "subject", subject, "recipients", len(to))
	}()
}
