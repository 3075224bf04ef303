package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/manhreal/web-2-grw-sub000/core"
)

var (
	// SentMessages collects everything the mock service "sends"; tests inspect it.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

// ClearSentMessages resets the mock outbox between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}

type consoleService struct {
	defaultFromEmail string
	subjPrefix       string
	disableOutput    bool
	sync             bool
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService writes outgoing mail to the log; the DEV stand-in for sendgrid.
func NewConsoleService(appName, fromEmail string) core.EmailService {
	return &consoleService{
		defaultFromEmail: fromEmail,
		subjPrefix:       "[" + appName + "] ",
	}
}

// NewConsoleServiceMock sends synchronously, silently, and records every
// message in SentMessages.
func NewConsoleServiceMock(appName, fromEmail string) core.EmailService {
	return &consoleService{
		defaultFromEmail: fromEmail,
		subjPrefix:       "[" + appName + "] ",
		disableOutput:    true,
		sync:             true,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if svc.sync {
			svc.sendMessage(msg)
		} else {
			go svc.sendMessage(msg)
		}
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if len(msg.To) == 0 || msg.Body == "" {
		return
	}
	if !svc.disableOutput {
		svc.print(*msg)
	}
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) print(msg core.EmailMessage) {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail)
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n\r\n", joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
	log.Println(body.String())
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
