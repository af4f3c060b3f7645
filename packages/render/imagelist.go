package render

import (
	"image"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ImageList loads batches of images. Batches run one after another in the
// order they were queued; the images of one batch are fetched in
// parallel. A batch is complete when every fetch has either succeeded or
// failed, and its job then runs on the render thread. The next batch
// starts only after that job has returned.
type ImageList struct {
	fetch Fetcher
	post  func(func())
	// Parallel bounds concurrent fetches inside a batch; 0 means no limit.
	Parallel int

	mu     sync.Mutex
	images []image.Image
	byURL  map[string]image.Image

	qmu   sync.Mutex
	queue []func()
	wake  chan struct{}
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewImageList starts the list's worker. post queues a callback onto the
// render thread; nil runs callbacks on the worker.
func NewImageList(f Fetcher, post func(func())) *ImageList {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	l := &ImageList{
		fetch: f,
		post:  post,
		byURL: make(map[string]image.Image),
		wake:  make(chan struct{}, 1),
		quit:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *ImageList) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.quit:
			return
		default:
		}
		l.qmu.Lock()
		var task func()
		if len(l.queue) > 0 {
			task = l.queue[0]
			l.queue = l.queue[1:]
		}
		l.qmu.Unlock()
		if task != nil {
			task()
			continue
		}
		select {
		case <-l.wake:
		case <-l.quit:
			return
		}
	}
}

// enqueue never blocks, so Load and Clear are safe to call from a job.
func (l *ImageList) enqueue(task func()) {
	l.qmu.Lock()
	l.queue = append(l.queue, task)
	l.qmu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Load queues a batch. It returns immediately; job (which may be nil)
// runs once all urls have finished loading. Failed urls are logged and
// left out of the list.
func (l *ImageList) Load(urls []string, job func()) {
	urls = append([]string(nil), urls...)
	l.enqueue(func() { l.loadBatch(urls, job) })
}

func (l *ImageList) loadBatch(urls []string, job func()) {
	results := make([]image.Image, len(urls))
	var g errgroup.Group
	if l.Parallel > 0 {
		g.SetLimit(l.Parallel)
	}
	for i, u := range urls {
		g.Go(func() error {
			img, err := l.fetch.Fetch(u)
			if err != nil {
				Logger().Warn("image list load failed", slog.Any("err", &ImageLoadError{URL: u, Err: err}))
				return nil
			}
			results[i] = img
			return nil
		})
	}
	g.Wait()

	l.mu.Lock()
	for i, img := range results {
		if img == nil {
			continue
		}
		l.images = append(l.images, img)
		l.byURL[urls[i]] = img
	}
	l.mu.Unlock()

	done := make(chan struct{})
	l.post(func() {
		defer close(done)
		if job != nil {
			job()
		}
	})
	select {
	case <-done:
	case <-l.quit:
	}
}

// Get returns the image loaded from url.
func (l *ImageList) Get(url string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.byURL[url]
	return img, ok
}

func (l *ImageList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.images)
}

// Clear drops all loaded images once the batches queued before it are
// done.
func (l *ImageList) Clear() {
	l.enqueue(func() {
		l.mu.Lock()
		l.images = nil
		l.byURL = make(map[string]image.Image)
		l.mu.Unlock()
	})
}

// Close stops the worker. Batches not yet started are dropped.
func (l *ImageList) Close() {
	l.once.Do(func() { close(l.quit) })
	l.wg.Wait()
}
