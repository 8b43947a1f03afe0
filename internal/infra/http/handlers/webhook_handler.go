package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

const SignatureHeader = "X-Webhook-Signature"

// WebhookHandler receives replies from the inbound mail provider.
type WebhookHandler struct {
	InboundUC *usecase.RecordInboundReplyUseCase
	Secret    string
	Logger    *zap.Logger
}

func NewWebhookHandler(uc *usecase.RecordInboundReplyUseCase, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		InboundUC: uc,
		Secret:    secret,
		Logger:    logger,
	}
}

type inboundPayload struct {
	Sender     string `json:"sender"`
	From       string `json:"from"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Text       string `json:"text"`
	CustomerID string `json:"customerId"`
	MessageID  string `json:"messageId"`
}

func (p inboundPayload) input() usecase.InboundReplyInput {
	return usecase.InboundReplyInput{
		Sender:     firstNonEmpty(p.Sender, p.From),
		Subject:    p.Subject,
		Body:       firstNonEmpty(p.Body, p.Text),
		CustomerID: p.CustomerID,
		MessageID:  p.MessageID,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "Could not read body")
		return
	}

	if h.Secret != "" && !ValidSignature(h.Secret, raw, r.Header.Get(SignatureHeader)) {
		h.Logger.Warn("inbound webhook rejected: bad signature", zap.String("remote", r.RemoteAddr))
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "Invalid signature")
		return
	}

	payload, err := parseInbound(r, raw)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "Invalid payload")
		return
	}

	output, err := h.InboundUC.Execute(r.Context(), payload.input())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	if output.Duplicate {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Email already received"})
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Email received"})
}

// ValidSignature compares signature against the hex HMAC-SHA256 of body.
func ValidSignature(secret string, body []byte, signature string) bool {
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

func parseInbound(r *http.Request, raw []byte) (inboundPayload, error) {
	var p inboundPayload

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return p, err
			}
		} else if err := r.ParseForm(); err != nil {
			return p, err
		}
		p = inboundPayload{
			Sender:     r.FormValue("sender"),
			From:       r.FormValue("from"),
			Subject:    r.FormValue("subject"),
			Body:       r.FormValue("body"),
			Text:       r.FormValue("text"),
			CustomerID: r.FormValue("customerId"),
			MessageID:  r.FormValue("messageId"),
		}
		return p, nil
	default:
		err := json.Unmarshal(raw, &p)
		return p, err
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
