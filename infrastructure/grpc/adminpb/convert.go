package adminpb

import (
	"chat-relay/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

func SessionToStruct(s domain.Session) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"connectionId": int(s.ConnectionID),
		"name":         s.DisplayName,
		"color":        s.ColorTag,
		"registeredAt": s.RegisteredAt.UTC().Format(time.RFC3339Nano),
	})
}

func SessionFromStruct(st *structpb.Struct) (domain.Session, error) {
	fields := st.GetFields()
	registeredAt, err := time.Parse(time.RFC3339Nano, fields["registeredAt"].GetStringValue())
	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid session registeredAt: %w", err)
	}
	return domain.Session{
		ConnectionID: domain.ConnectionID(fields["connectionId"].GetNumberValue()),
		DisplayName:  fields["name"].GetStringValue(),
		ColorTag:     fields["color"].GetStringValue(),
		RegisteredAt: registeredAt,
	}, nil
}

func EnvelopeToStruct(e domain.Envelope) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":             e.ID.String(),
		"senderName":     e.SenderName,
		"senderColor":    e.SenderColor,
		"body":           e.Body,
		"isNotification": e.IsNotification,
	})
}

func EnvelopeFromStruct(st *structpb.Struct) (domain.Envelope, error) {
	fields := st.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("invalid envelope id: %w", err)
	}
	envelope := domain.Envelope{
		ID:             id,
		SenderName:     fields["senderName"].GetStringValue(),
		SenderColor:    fields["senderColor"].GetStringValue(),
		Body:           fields["body"].GetStringValue(),
		IsNotification: fields["isNotification"].GetBoolValue(),
	}
	return envelope, envelope.Validate()
}
