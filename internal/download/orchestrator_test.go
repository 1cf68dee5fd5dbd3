package download

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytrelay/internal/errkind"
	"github.com/ytget/ytrelay/internal/model"
)

type fakeResolver struct {
	desc  *model.MediaDescriptor
	err   error
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, url string) (*model.MediaDescriptor, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.desc, nil
}

type fakeSource struct {
	content   string
	openErr   error
	failOpens int // fail this many Open calls before succeeding
	reader    io.Reader
	calls     int
}

func (f *fakeSource) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	f.calls++
	if f.failOpens > 0 {
		f.failOpens--
		return nil, 0, errors.New("503 from edge cache")
	}
	if f.openErr != nil {
		return nil, 0, f.openErr
	}
	r := f.reader
	if r == nil {
		r = strings.NewReader(f.content)
	}
	return io.NopCloser(r), int64(len(f.content)), nil
}

// brokenReader yields a prefix then fails, simulating a mid-stream network
// error.
type brokenReader struct {
	prefix string
	done   bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if !b.done {
		b.done = true
		n := copy(p, b.prefix)
		return n, nil
	}
	return 0, errors.New("connection reset by peer")
}

func testDescriptor() *model.MediaDescriptor {
	return &model.MediaDescriptor{
		Title:           "My Video?",
		Author:          "Jane Doe",
		DurationSeconds: 212,
		ViewCount:       100500,
	}
}

func newTestOrchestrator(root string, resolver *fakeResolver, source *fakeSource, maxRetries int, delay time.Duration) *Orchestrator {
	return NewOrchestrator(resolver, source, root, maxRetries, delay, zerolog.Nop(), nil)
}

func testRequest() *model.DownloadRequest {
	return model.NewDownloadRequest("https://youtube.com/watch?v=abc123", 111, 42)
}

func TestDownload_HappyPathWritesSanitizedPath(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{desc: testDescriptor()}
	source := &fakeSource{content: "video-bytes"}
	o := newTestOrchestrator(root, resolver, source, 3, time.Millisecond)

	outcome := o.Download(context.Background(), testRequest())

	require.True(t, outcome.Succeeded(), "outcome: %v", outcome.Err)
	assert.Equal(t, filepath.Join(root, "Jane_Doe", "My_Video_.mp4"), outcome.Path)

	data, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 1, source.calls)
}

func TestDownload_ExhaustsRetryBudget(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{err: errors.New("video is private")}
	source := &fakeSource{}
	o := newTestOrchestrator(root, resolver, source, 3, time.Millisecond)

	outcome := o.Download(context.Background(), testRequest())

	require.False(t, outcome.Succeeded())
	assert.Equal(t, 3, resolver.calls, "exactly maxRetries attempts")
	assert.Equal(t, 0, source.calls)

	var exhausted *errkind.ExhaustedError
	require.True(t, errors.As(outcome.Err, &exhausted))
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Contains(t, exhausted.Error(), "video is private")
}

func TestDownload_SucceedsOnLastAttempt(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{desc: testDescriptor()}
	source := &fakeSource{content: "ok", failOpens: 2}
	o := newTestOrchestrator(root, resolver, source, 3, time.Millisecond)

	outcome := o.Download(context.Background(), testRequest())

	require.True(t, outcome.Succeeded(), "outcome: %v", outcome.Err)
	assert.Equal(t, 3, resolver.calls)
	assert.Equal(t, 3, source.calls)
}

func TestDownload_FixedDelayBetweenAttempts(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{desc: testDescriptor()}
	source := &fakeSource{content: "ok", failOpens: 2}
	delay := 30 * time.Millisecond
	o := newTestOrchestrator(root, resolver, source, 3, delay)

	start := time.Now()
	outcome := o.Download(context.Background(), testRequest())
	elapsed := time.Since(start)

	require.True(t, outcome.Succeeded())
	assert.GreaterOrEqual(t, elapsed, 2*delay, "two failed attempts mean two fixed delays")
}

func TestDownload_FatalProvisioningBypassesRetries(t *testing.T) {
	tempDir := t.TempDir()
	// The output root is a regular file, so the author directory can never
	// be created.
	root := filepath.Join(tempDir, "occupied")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	resolver := &fakeResolver{desc: testDescriptor()}
	source := &fakeSource{content: "ok"}
	o := newTestOrchestrator(root, resolver, source, 3, time.Millisecond)

	outcome := o.Download(context.Background(), testRequest())

	require.False(t, outcome.Succeeded())
	var provErr *errkind.ProvisionError
	require.True(t, errors.As(outcome.Err, &provErr))

	assert.Equal(t, 1, resolver.calls, "no retries after fatal provisioning error")
	assert.Equal(t, 0, source.calls, "no transfer attempts")
}

func TestDownload_MidStreamErrorIsRetryable(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{desc: testDescriptor()}
	source := &fakeSource{reader: &brokenReader{prefix: "partial"}}
	o := newTestOrchestrator(root, resolver, source, 1, time.Millisecond)

	outcome := o.Download(context.Background(), testRequest())

	require.False(t, outcome.Succeeded())
	var te *errkind.TransferError
	require.True(t, errors.As(outcome.Err, &te))
	assert.Equal(t, "copy", te.Stage)

	// The partial file stays in place.
	data, err := os.ReadFile(filepath.Join(root, "Jane_Doe", "My_Video_.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "partial", string(data))
}

func TestDownload_TruncatesPriorPartialContent(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{desc: testDescriptor()}

	first := &fakeSource{content: "a much longer first attempt body"}
	o := newTestOrchestrator(root, resolver, first, 1, time.Millisecond)
	outcome := o.Download(context.Background(), testRequest())
	require.True(t, outcome.Succeeded())

	second := &fakeSource{content: "short"}
	o = newTestOrchestrator(root, resolver, second, 1, time.Millisecond)
	outcome = o.Download(context.Background(), testRequest())
	require.True(t, outcome.Succeeded())

	data, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data), "later smaller attempt must not keep tail bytes")
}

func TestDownload_CancelledContextStopsRetrying(t *testing.T) {
	root := t.TempDir()
	resolver := &fakeResolver{err: errors.New("timeout")}
	source := &fakeSource{}
	o := newTestOrchestrator(root, resolver, source, 5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	outcome := o.Download(ctx, testRequest())

	require.False(t, outcome.Succeeded())
	assert.Less(t, time.Since(start), time.Second, "retry wait must observe cancellation")
	assert.Equal(t, 1, resolver.calls)
}
