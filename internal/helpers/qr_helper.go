package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// QRPayload is what a scanner reads back: enough to reconstruct the
// validation input. The token is the only admission secret; the signature
// lets a scanner reject tampered payloads offline.
type QRPayload struct {
	Token     string `json:"token"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"issued_at"`
	Signature string `json:"signature"`
}

func SignQRData(secret, token string, eventID, userID uuid.UUID) string {
	data := fmt.Sprintf("%s:%s:%s", token, eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func BuildQRPayload(secret string, ticket models.Ticket) (string, error) {
	payload := QRPayload{
		Token:     ticket.Token,
		EventID:   ticket.EventID.String(),
		UserID:    ticket.UserID.String(),
		IssuedAt:  ticket.IssuedAt.Unix(),
		Signature: SignQRData(secret, ticket.Token, ticket.EventID, ticket.UserID),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func VerifyQRSignature(secret string, payload QRPayload) bool {
	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		return false
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return false
	}

	expected := SignQRData(secret, payload.Token, eventID, userID)
	return hmac.Equal([]byte(expected), []byte(payload.Signature))
}

// RenderQRDataURL encodes data as a 256px PNG QR code, returned as a
// data URL ready for an <img> tag.
func RenderQRDataURL(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
