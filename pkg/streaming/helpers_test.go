package streaming

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/EmilyShepherd/companieshouse-go/pkg/client"
	"github.com/EmilyShepherd/companieshouse-go/pkg/token"
)

const testKey = "test-api-key"

func companyLine(timepoint int, name string) string {
	return fmt.Sprintf(`{"data":{"company_name":%q,"company_number":"%08d","can_file":true,"type":"ltd"},"event":{"published_at":"2024-05-01T10:00:00","timepoint":%d,"type":"changed"},"resource_id":"%08d","resource_kind":"company-profile"}`+"\n", name, timepoint, timepoint, timepoint)
}

// recorder keeps the query of every request made to a test server.
type recorder struct {
	lock       sync.Mutex
	timepoints []string
	auth       []string
	paths      []string
}

func (r *recorder) record(req *http.Request) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, _, _ := req.BasicAuth()
	r.auth = append(r.auth, user)
	r.paths = append(r.paths, req.URL.Path)
	r.timepoints = append(r.timepoints, req.URL.Query().Get("timepoint"))
	return len(r.timepoints)
}

func (r *recorder) seen() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.timepoints...)
}

func (r *recorder) users() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.auth...)
}

func (r *recorder) lastPath() string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.paths[len(r.paths)-1]
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tp, err := token.NewStaticToken(testKey)
	require.NoError(t, err)

	kc := client.NewClient(tp, client.WithBaseURL(srv.URL))
	return NewClient(kc, opts...), srv
}

// writeChunks writes each chunk as its own flushed write.
func writeChunks(w http.ResponseWriter, chunks ...string) {
	flusher := w.(http.Flusher)
	for _, c := range chunks {
		fmt.Fprint(w, c)
		flusher.Flush()
		time.Sleep(5 * time.Millisecond)
	}
}

var fastBackoff = wait.Backoff{
	Duration: 5 * time.Millisecond,
	Factor:   1,
	Steps:    1,
}
