package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestBrevoClient_SendVibeApproved(t *testing.T) {
	var got BrevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "k", Endpoint: srv.URL}
	err := c.SendVibeApproved(context.Background(), "priya@example.com", "priya", "Invoice <Ninja>", "https://vibemarket.tech/vibe/1")
	require.NoError(t, err)

	assert.Equal(t, "k", apiKey)
	assert.Equal(t, subjectApproved, got.Subject)
	assert.Equal(t, defaultFrom, got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "priya@example.com", got.To[0].Email)
	assert.Contains(t, got.HTMLContent, "Invoice &lt;Ninja&gt;")
}

func TestBrevoClient_NoAPIKeyIsNoop(t *testing.T) {
	c := &BrevoClient{Endpoint: "http://127.0.0.1:0"}
	assert.NoError(t, c.SendVibeRejected(context.Background(), "a@b.io", "a", "t"))
}

func TestBrevoClient_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "k", Endpoint: srv.URL}
	assert.Error(t, c.SendVibeRejected(context.Background(), "a@b.io", "a", "t"))
}

func TestSMTPSender_BuildsMessage(t *testing.T) {
	var sent []*gomail.Message
	s := &SMTPSender{MailFrom: "mod@vibemarket.tech", dial: func(m ...*gomail.Message) error {
		sent = append(sent, m...)
		return nil
	}}

	require.NoError(t, s.SendVibeRejected(context.Background(), "a@b.io", "a", "ColorCraft"))
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@b.io"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{subjectRejected}, sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ColorCraft")
}

func TestSMTPSender_EmptyRecipientIsNoop(t *testing.T) {
	s := &SMTPSender{dial: func(m ...*gomail.Message) error {
		t.Fatal("should not send")
		return nil
	}}
	assert.NoError(t, s.SendVibeApproved(context.Background(), "", "a", "t", "u"))
}
