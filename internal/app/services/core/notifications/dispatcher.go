package notifications

import (
	"context"
	"fmt"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type recipient int

const (
	recipientPatient recipient = iota
	recipientDoctor
)

type template struct {
	title      string
	message    string
	recipients []recipient
}

var templates = map[models.EventType]template{
	models.EventAppointmentCreated: {
		title:      "New appointment",
		message:    "Appointment on %s at %s was requested",
		recipients: []recipient{recipientPatient, recipientDoctor},
	},
	models.EventAppointmentConfirmed: {
		title:      "Appointment confirmed",
		message:    "Your appointment on %s at %s is confirmed",
		recipients: []recipient{recipientPatient},
	},
	models.EventAppointmentCancelled: {
		title:      "Appointment cancelled",
		message:    "Appointment on %s at %s was cancelled",
		recipients: []recipient{recipientPatient, recipientDoctor},
	},
	models.EventAppointmentCompleted: {
		title:      "Appointment completed",
		message:    "Appointment on %s at %s is completed",
		recipients: []recipient{recipientPatient},
	},
	models.EventAppointmentRescheduled: {
		title:      "Appointment rescheduled",
		message:    "Appointment moved to %s at %s",
		recipients: []recipient{recipientPatient, recipientDoctor},
	},
	models.EventPaymentSucceeded: {
		title:      "Payment received",
		message:    "Payment for the appointment on %s at %s was received",
		recipients: []recipient{recipientPatient, recipientDoctor},
	},
	models.EventPaymentFailed: {
		title:      "Payment failed",
		message:    "Payment for the appointment on %s at %s failed",
		recipients: []recipient{recipientPatient},
	},
}

// Dispatcher turns domain events into per-user notification messages and hands
// them to the publisher. It never reports failure to the caller.
type Dispatcher struct {
	Publisher         contracts.NotificationPublisher
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	Log               *zap.Logger
}

func NewDispatcher(
	publisher contracts.NotificationPublisher,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		Publisher:         publisher,
		PatientRepository: patientRepository,
		DoctorRepository:  doctorRepository,
		Log:               logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event models.DomainEvent) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Info("Dispatcher.Dispatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, string(event.Type)),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, message := range d.buildMessages(publishCtx, event) {
		if err := d.Publisher.Publish(publishCtx, message); err != nil {
			d.Log.Error("Dispatcher.Dispatch error calling Publisher.Publish",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventTypeKey, string(event.Type)),
				zap.String(constvars.LoggingUserIDKey, message.UserID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) buildMessages(ctx context.Context, event models.DomainEvent) []*models.NotificationMessage {
	tmpl, ok := templates[event.Type]
	if !ok {
		d.Log.Warn("Dispatcher.buildMessages unknown event type",
			zap.String(constvars.LoggingEventTypeKey, string(event.Type)),
		)
		return nil
	}

	data := map[string]string{
		"appointmentId":   event.AppointmentID,
		"appointmentDate": event.AppointmentDate,
		"startTime":       event.StartTime,
	}
	if event.PaymentID != "" {
		data["paymentId"] = event.PaymentID
		data["amount"] = strconv.FormatInt(event.Amount, 10)
	}
	if event.Reason != "" {
		data["reason"] = event.Reason
	}

	messages := make([]*models.NotificationMessage, 0, len(tmpl.recipients))
	for _, r := range tmpl.recipients {
		userID := d.resolveUserID(ctx, r, event)
		if userID == "" || userID == event.ActorUserID {
			continue
		}
		messages = append(messages, &models.NotificationMessage{
			EventID: event.ID,
			UserID:  userID,
			Type:    event.Type,
			Title:   tmpl.title,
			Message: fmt.Sprintf(tmpl.message, event.AppointmentDate, event.StartTime),
			Data:    data,
		})
	}
	return messages
}

func (d *Dispatcher) resolveUserID(ctx context.Context, r recipient, event models.DomainEvent) string {
	switch r {
	case recipientPatient:
		if event.PatientID == "" {
			return ""
		}
		patient, err := d.PatientRepository.FindByID(ctx, event.PatientID)
		if err != nil || patient == nil {
			d.Log.Warn("Dispatcher.resolveUserID patient not resolved",
				zap.String(constvars.LoggingPatientIDKey, event.PatientID),
				zap.Error(err),
			)
			return ""
		}
		return patient.UserID
	case recipientDoctor:
		if event.DoctorID == "" {
			return ""
		}
		doctor, err := d.DoctorRepository.FindByID(ctx, event.DoctorID)
		if err != nil || doctor == nil {
			d.Log.Warn("Dispatcher.resolveUserID doctor not resolved",
				zap.String(constvars.LoggingDoctorIDKey, event.DoctorID),
				zap.Error(err),
			)
			return ""
		}
		return doctor.UserID
	}
	return ""
}
