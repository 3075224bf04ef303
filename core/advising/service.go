package advising

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core"
)

var ErrNotFound = errors.New("advising request not found")

type (
	Repository interface {
		CreateRequest(req Request) (Request, error)
		QueryRequests() ([]Request, error)
		GetRequestByID(id int) (Request, error)
		SetRequestHandled(id int, handled bool) (Request, error)
	}

	Service struct {
		repo        Repository
		mailSvc     core.EmailService
		notifyEmail string
	}
)

func NewService(repo Repository, mailSvc core.EmailService, notifyEmail string) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, notifyEmail: notifyEmail}
}

// Create persists a new advising request and notifies the advising team.
// The notification is best-effort: the request is already stored when it fires.
func (svc *Service) Create(nr NewRequest) (Request, error) {
	req, err := svc.repo.CreateRequest(Request{
		FullName:   nr.FullName,
		Email:      nr.Email,
		Phone:      nr.Phone,
		CourseName: nr.CourseName,
		Message:    nr.Message,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return Request{}, errors.Wrap(err, "creating advising request")
	}

	if svc.mailSvc != nil && svc.notifyEmail != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Address: svc.notifyEmail}},
			Subject: fmt.Sprintf("New advising request from %s", req.FullName),
			Body: fmt.Sprintf(
				"Name: %s\nEmail: %s\nPhone: %s\nCourse: %s\n\n%s",
				req.FullName, req.Email, req.Phone, req.CourseName, req.Message,
			),
		})
	}
	return req, nil
}

func (svc *Service) Query() ([]Request, error) {
	return svc.repo.QueryRequests()
}

func (svc *Service) Get(id int) (Request, error) {
	return svc.repo.GetRequestByID(id)
}

func (svc *Service) MarkHandled(id int, handled bool) (Request, error) {
	return svc.repo.SetRequestHandled(id, handled)
}
