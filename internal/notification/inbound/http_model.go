package inbound

import (
	"net/http"

	"github.com/mabinihs/portal/internal/notification/entity"
	"github.com/mabinihs/portal/internal/notification/usecase"
)

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	HTML    string `json:"html"`
}

type SendEmailResponse struct{}

func (SendEmailResponse) Message() string {
	return "Email sent successfully"
}

type SendSMSRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type StudentRequest struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s StudentRequest) entity() entity.Student {
	return entity.Student{FullName: s.FullName, FirstName: s.FirstName, LastName: s.LastName}
}

type AttendanceSMSRequest struct {
	Student     StudentRequest `json:"student"`
	ParentPhone string         `json:"parent_phone"`
	Timestamp   string         `json:"timestamp" example:"2026-03-02T07:30:00+08:00"`
}

type AbsenceSMSRequest struct {
	Student     StudentRequest `json:"student"`
	ParentPhone string         `json:"parent_phone"`
	Date        string         `json:"date" example:"2026-03-02"`
}

// SendSMSResponse carries the gateway answer. A rejected message is
// reported with 502 and success=false.
type SendSMSResponse struct {
	Success   bool   `json:"-"`
	Response  string `json:"response"`
	Recipient string `json:"recipient"`
}

func newSendSMSResponse(out *usecase.SendSMSOutput) SendSMSResponse {
	return SendSMSResponse{Success: out.Success, Response: out.Response, Recipient: out.Recipient}
}

func (r SendSMSResponse) Message() string {
	if !r.Success {
		return "SMS gateway rejected the message"
	}
	return "SMS sent successfully"
}

func (r SendSMSResponse) StatusCode() int {
	if !r.Success {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
