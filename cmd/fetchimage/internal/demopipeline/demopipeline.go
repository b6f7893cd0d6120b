// Package demopipeline is a small pipeline implementation backing the demo
// CLI. It fetches from local files or HTTP, reports chunked progress, and
// keeps decoded images in a memory cache.
//
// It exists so the controller has something real to orchestrate from the
// terminal; it is demo scaffolding, not part of the library contract.
package demopipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	// Decoders for the formats the demo accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kean/FetchImage/pkg/pipeline"
)

const chunkSize = 32 * 1024

// Pipeline implements [pipeline.Pipeline] over files and HTTP.
// Safe for concurrent use.
type Pipeline struct {
	mu    sync.Mutex
	cache map[string]image.Image

	// Constrained simulates a constrained network: loads whose request
	// does not allow constrained access fail with KindNetworkConstrained.
	Constrained bool

	// Client is used for http(s) URLs. Defaults to http.DefaultClient.
	Client *http.Client
}

// New creates an empty demo pipeline.
func New() *Pipeline {
	return &Pipeline{cache: make(map[string]image.Image)}
}

// CachedImage implements [pipeline.Pipeline].
func (p *Pipeline) CachedImage(request pipeline.Request) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache[request.URL]
}

// LoadImage implements [pipeline.Pipeline]. The load runs on its own
// goroutine; callbacks fire from that goroutine, so callers are expected to
// marshal them onto their owning context.
func (p *Pipeline) LoadImage(request pipeline.Request, onProgress func(pipeline.ProgressUpdate), onCompletion func(image.Image, error)) pipeline.Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{priority: request.Priority, cancel: cancel}
	go p.run(ctx, request, onProgress, onCompletion)
	return t
}

func (p *Pipeline) run(ctx context.Context, request pipeline.Request, onProgress func(pipeline.ProgressUpdate), onCompletion func(image.Image, error)) {
	img, err := p.load(ctx, request, onProgress)
	if err != nil {
		onCompletion(nil, err)
		return
	}
	p.mu.Lock()
	p.cache[request.URL] = img
	p.mu.Unlock()
	onCompletion(img, nil)
}

func (p *Pipeline) load(ctx context.Context, request pipeline.Request, onProgress func(pipeline.ProgressUpdate)) (image.Image, error) {
	if p.Constrained && !request.AllowConstrainedNetwork {
		return nil, &pipeline.LoadError{URL: request.URL, Kind: pipeline.KindNetworkConstrained}
	}

	body, total, err := p.open(ctx, request.URL)
	if err != nil {
		return nil, &pipeline.LoadError{URL: request.URL, Kind: pipeline.KindNetwork, Err: err}
	}
	defer body.Close()

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		if ctx.Err() != nil {
			return nil, &pipeline.LoadError{URL: request.URL, Kind: pipeline.KindCancelled, Err: ctx.Err()}
		}
		n, readErr := body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if onProgress != nil {
				onProgress(pipeline.ProgressUpdate{Completed: int64(buf.Len()), Total: total})
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, &pipeline.LoadError{URL: request.URL, Kind: pipeline.KindNetwork, Err: readErr}
		}
	}

	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, &pipeline.LoadError{URL: request.URL, Kind: pipeline.KindDecode, Err: err}
	}
	return img, nil
}

// open resolves a URL to a byte stream and its expected total size,
// or -1 when unknown.
func (p *Pipeline) open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, err
		}
		client := p.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, 0, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, resp.ContentLength, nil

	default:
		path := strings.TrimPrefix(url, "file://")
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, err
		}
		return f, info.Size(), nil
	}
}

// task is the handle for one demo load.
type task struct {
	mu       sync.Mutex
	priority pipeline.Priority
	cancel   context.CancelFunc
}

func (t *task) Cancel() {
	t.cancel()
}

func (t *task) Priority() pipeline.Priority {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priority
}

// SetPriority records the priority. The demo pipeline runs every load
// immediately, so priority does not affect scheduling here.
func (t *task) SetPriority(priority pipeline.Priority) {
	t.mu.Lock()
	t.priority = priority
	t.mu.Unlock()
}
