package reply

import (
	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/mail"
	"github.com/soutienhq/soutien/route"
)

// Context carries everything Suggest needs to draft a reply.
type Context struct {
	Decision route.Decision
	Snippets []core.Snippet

	// References pulled out of the incoming message.
	Emails []string
	URLs   []string
	IDs    []string
}

// BuildContext assembles a drafting context from the email, its routing
// decision and the retrieved snippets.
func BuildContext(email *mail.Email, decision route.Decision, snippets []core.Snippet) Context {
	text := email.Subject + " " + email.Body
	return Context{
		Decision: decision,
		Snippets: snippets,
		Emails:   mail.ExtractEmails(text),
		URLs:     mail.ExtractURLs(text),
		IDs:      mail.ExtractIDs(text),
	}
}
