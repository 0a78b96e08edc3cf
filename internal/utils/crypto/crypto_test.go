package crypto

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func stripeHeader(payload []byte, secret string, ts time.Time) string {
	signed := fmt.Sprintf("%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), ComputeWebhookSignature([]byte(signed), secret))
}

func TestVerifyStripeSignature_Valid(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := stripeHeader(payload, "whsec_test", time.Now())

	require.NoError(t, VerifyStripeSignature(header, payload, "whsec_test", 5*time.Minute))
}

func TestVerifyStripeSignature_WrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := stripeHeader(payload, "whsec_other", time.Now())

	require.Error(t, VerifyStripeSignature(header, payload, "whsec_test", 5*time.Minute))
}

func TestVerifyStripeSignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"amount":100}`)
	header := stripeHeader(payload, "whsec_test", time.Now())

	require.Error(t, VerifyStripeSignature(header, []byte(`{"amount":99999}`), "whsec_test", 5*time.Minute))
}

func TestVerifyStripeSignature_StaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	header := stripeHeader(payload, "whsec_test", time.Now().Add(-time.Hour))

	require.Error(t, VerifyStripeSignature(header, payload, "whsec_test", 5*time.Minute))
}

func TestVerifyStripeSignature_MalformedHeader(t *testing.T) {
	require.Error(t, VerifyStripeSignature("", []byte(`{}`), "whsec_test", time.Minute))
	require.Error(t, VerifyStripeSignature("v1=abc", []byte(`{}`), "whsec_test", time.Minute))
	require.Error(t, VerifyStripeSignature("t=notanumber,v1=abc", []byte(`{}`), "whsec_test", time.Minute))
}

func TestComputeWebhookSignature_Deterministic(t *testing.T) {
	a := ComputeWebhookSignature([]byte("hello"), "secret")
	b := ComputeWebhookSignature([]byte("hello"), "secret")
	require.Equal(t, a, b)
	require.Len(t, a, 64) // hex sha256

	require.NotEqual(t, a, ComputeWebhookSignature([]byte("hello"), "other"))
}
