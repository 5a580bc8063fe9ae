// internal/upstream/client_test.go
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/proconnect/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jan@example.be", body["email"])
		assert.Equal(t, "geheim123", body["password"])
		writeJSON(w, http.StatusOK, map[string]string{"token": "abc.def.ghi"})
	})

	token, err := client.Login(context.Background(), "jan@example.be", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestAPIErrorMessage(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server message", http.StatusBadRequest, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", http.StatusConflict, `{"error":"Email already in use"}`, "Email already in use"},
		{"no message", http.StatusInternalServerError, `{}`, FallbackMessage(http.StatusInternalServerError)},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, FallbackMessage(http.StatusBadGateway)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := client.Login(context.Background(), "a@b.nl", "secret1")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
			assert.False(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.Login(context.Background(), "a@b.nl", "secret1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTokenForwarded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proconnect/api/users/getnewtoken", r.URL.Path)
		assert.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))
		cookie, err := r.Cookie("token")
		require.NoError(t, err)
		assert.Equal(t, "old-token", cookie.Value)
		writeJSON(w, http.StatusOK, map[string]string{"token": "new-token"})
	})

	token, err := client.RefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestRefreshWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})
	_, err := client.RefreshToken(context.Background(), "old-token")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestRegisterMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proconnect/api/users/register", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Eva", r.FormValue("firstName"))
		assert.Equal(t, "individual", r.FormValue("userType"))
		assert.JSONEq(t, `{"city":"Utrecht","country":"Netherlands"}`, r.FormValue("address"))
		assert.JSONEq(t, `["Painting","Others"]`, r.FormValue("projectInterest"))
		assert.Equal(t, "Roofing", r.FormValue("otherProjectInterest"))
		_, hasCompany := r.MultipartForm.Value["companyName"]
		assert.False(t, hasCompany, "individuals do not send company fields")

		files := r.MultipartForm.File
		require.Len(t, files["identificationDocument"], 1)
		assert.Equal(t, "id.pdf", files["identificationDocument"][0].Filename)
		assert.Equal(t, "application/pdf", files["identificationDocument"][0].Header.Get("Content-Type"))
		assert.Empty(t, files["professionalCertificates"], "certificates are craftsman-only")
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Register(context.Background(), &RegisterRequest{
		FirstName:                "Eva",
		LastName:                 "de Vries",
		Email:                    "eva@example.nl",
		Password:                 "geheim123",
		Address:                  Address{City: "Utrecht", Country: "Netherlands"},
		UserType:                 domain.UserTypeIndividual,
		CompanyName:              "ignored",
		ProjectInterest:          []string{"Painting", core.OthersSentinel},
		OtherProjectInterest:     "Roofing",
		IdentificationDocument:   &core.Attachment{Filename: "id.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		ProfessionalCertificates: []*core.Attachment{{Filename: "c.pdf", ContentType: "application/pdf"}},
	})
	require.NoError(t, err)
}

func TestRegisterCraftsmanCertificates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Peeters Bouw", r.FormValue("companyName"))
		assert.Equal(t, "BE1234567890", r.FormValue("vatOrKvKNumber"))
		assert.Empty(t, r.FormValue("projectInterest"))
		assert.Len(t, r.MultipartForm.File["professionalCertificates"], 2)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Register(context.Background(), &RegisterRequest{
		FirstName:      "Jan",
		Email:          "jan@example.be",
		Password:       "geheim123",
		Address:        Address{Country: "Belgium"},
		UserType:       domain.UserTypeCraftsman,
		CompanyName:    "Peeters Bouw",
		VatOrKvKNumber: "BE1234567890",
		ProfessionalCertificates: []*core.Attachment{
			{Filename: "a.pdf", ContentType: "application/pdf"},
			{Filename: "b.png", ContentType: "image/png"},
		},
	})
	require.NoError(t, err)
}

func TestVerificationStatus(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{"status field", `{"status":"verified"}`, "verified"},
		{"message field", `{"message":"Code sent"}`, "Code sent"},
		{"bare string", `"pending"`, "pending"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/proconnect/api/users/email-verification-status", r.URL.Path)
				_, _ = io.WriteString(w, tc.body)
			})
			got, err := client.EmailVerificationStatus(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerifyPhoneOTP(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proconnect/api/users/verify-otp", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"phoneNumber": "0612345678", "otp": "123456"}, body)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Phone verified"})
	})
	msg, err := client.VerifyPhoneOTP(context.Background(), "tok", "0612345678", "123456")
	require.NoError(t, err)
	assert.Equal(t, "Phone verified", msg)
}

func slowHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(2 * time.Second):
		writeJSON(w, http.StatusOK, []domain.Project{})
	}
}

func TestDeadlineStaysInErrorChain(t *testing.T) {
	client := newTestClient(t, slowHandler)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListProjects(ctx, "tok", core.FilterCriteria{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientTimeoutIsNetTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(slowHandler))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 50*time.Millisecond)

	_, err := client.ListProjects(context.Background(), "tok", core.FilterCriteria{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}
