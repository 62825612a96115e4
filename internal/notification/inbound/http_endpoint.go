package inbound

import (
	"context"

	"github.com/mabinihs/portal/internal/notification/usecase"
	"github.com/mabinihs/portal/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// SendEmail relays an email for another portal service.
// @Summary Relay an email
// @Tags Notification
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body SendEmailRequest true "Recipient, subject and body"
// @Success 200 {object} SendEmailResponse "Email sent"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Token does not allow this operation"
// @Failure 500 {object} router.errorResponse "Failed to send email"
// @Router /api/send-email [post]
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req, "Missing required fields: to, subject, and (message or html)"); err != nil {
		return nil, err
	}

	if err := h.uc.SendEmail(r.Context(), usecase.SendEmailInput{
		To:      req.To,
		Subject: req.Subject,
		Message: req.Message,
		HTML:    req.HTML,
	}); err != nil {
		return nil, err
	}

	return SendEmailResponse{}, nil
}

// SendSMS relays a text message to the SMS gateway.
// @Summary Relay an SMS
// @Tags Notification
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body SendSMSRequest true "Recipient and message"
// @Success 200 {object} SendSMSResponse "Gateway accepted"
// @Failure 400 {object} router.errorResponse "Recipient and message are required"
// @Failure 502 {object} SendSMSResponse "Gateway rejected"
// @Failure 500 {object} router.errorResponse "Failed to send SMS"
// @Router /api/sms/send [post]
func (h *HTTPEndpoint) SendSMS(r *router.Request) (any, error) {
	var req SendSMSRequest
	if err := r.DecodeBody(&req, "Recipient and message are required"); err != nil {
		return nil, err
	}

	out, err := h.uc.SendSMS(r.Context(), usecase.SendSMSInput{
		Recipient: req.Recipient,
		Message:   req.Message,
	})
	if err != nil {
		return nil, err
	}

	return newSendSMSResponse(out), nil
}

// SendCheckInSMS tells a parent their child checked in.
// @Summary Check-in SMS
// @Tags Notification
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body AttendanceSMSRequest true "Student, parent phone and check-in time"
// @Success 200 {object} SendSMSResponse
// @Failure 400 {object} router.errorResponse
// @Failure 502 {object} SendSMSResponse
// @Router /api/sms/check_in [post]
func (h *HTTPEndpoint) SendCheckInSMS(r *router.Request) (any, error) {
	return h.attendance(r, h.uc.SendCheckInSMS)
}

// SendCheckOutSMS tells a parent their child checked out.
// @Summary Check-out SMS
// @Tags Notification
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body AttendanceSMSRequest true "Student, parent phone and check-out time"
// @Success 200 {object} SendSMSResponse
// @Failure 400 {object} router.errorResponse
// @Failure 502 {object} SendSMSResponse
// @Router /api/sms/check_out [post]
func (h *HTTPEndpoint) SendCheckOutSMS(r *router.Request) (any, error) {
	return h.attendance(r, h.uc.SendCheckOutSMS)
}

// SendAbsenceSMS tells a parent their child was marked absent.
// @Summary Absence SMS
// @Tags Notification
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param request body AbsenceSMSRequest true "Student, parent phone and date"
// @Success 200 {object} SendSMSResponse
// @Failure 400 {object} router.errorResponse
// @Failure 502 {object} SendSMSResponse
// @Router /api/sms/absence [post]
func (h *HTTPEndpoint) SendAbsenceSMS(r *router.Request) (any, error) {
	var req AbsenceSMSRequest
	if err := r.DecodeBody(&req, "Student and parent_phone are required"); err != nil {
		return nil, err
	}

	out, err := h.uc.SendAbsenceSMS(r.Context(), usecase.AttendanceSMSInput{
		Student:     req.Student.entity(),
		ParentPhone: req.ParentPhone,
		Timestamp:   req.Date,
	})
	if err != nil {
		return nil, err
	}

	return newSendSMSResponse(out), nil
}

func (h *HTTPEndpoint) attendance(r *router.Request, send func(ctx context.Context, in usecase.AttendanceSMSInput) (*usecase.SendSMSOutput, error)) (any, error) {
	var req AttendanceSMSRequest
	if err := r.DecodeBody(&req, "Student and parent_phone are required"); err != nil {
		return nil, err
	}

	out, err := send(r.Context(), usecase.AttendanceSMSInput{
		Student:     req.Student.entity(),
		ParentPhone: req.ParentPhone,
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		return nil, err
	}

	return newSendSMSResponse(out), nil
}
