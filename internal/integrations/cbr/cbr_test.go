package cbr

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRateResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR><DT>2024-11-20T00:00:00+03:00</DT><Rate>21.00</Rate></KR>
            <KR><DT>2024-10-25T00:00:00+03:00</DT><Rate>19.00</Rate></KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient(url string) *CBRClient {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCBRClient(&config.Config{CBRURL: url}, log)
}

func TestGetKeyRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://web.cbr.ru/KeyRate", r.Header.Get("SOAPAction"))
		_, _ = w.Write([]byte(keyRateResponse))
	}))
	defer server.Close()

	rate, err := newTestClient(server.URL).GetKeyRate()
	require.NoError(t, err)
	assert.Equal(t, "21", rate.String())
}

func TestGetKeyRateBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetKeyRate()
	assert.ErrorContains(t, err, "unexpected status code: 503")
}

func TestParseXMLResponseErrors(t *testing.T) {
	_, err := parseXMLResponse([]byte("<not-xml"))
	assert.Error(t, err)

	_, err = parseXMLResponse([]byte(`<root><diffgram><KeyRate></KeyRate></diffgram></root>`))
	assert.ErrorContains(t, err, "no key rate data")

	_, err = parseXMLResponse([]byte(`<root><diffgram><KeyRate><KR><Rate>n/a</Rate></KR></KeyRate></diffgram></root>`))
	assert.ErrorContains(t, err, "failed to parse rate")
}

func TestBuildSOAPRequest(t *testing.T) {
	req := newTestClient("").buildSOAPRequest(time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, req, "<fromDate>2024-10-21</fromDate>")
	assert.Contains(t, req, "<ToDate>2024-11-20</ToDate>")
}
