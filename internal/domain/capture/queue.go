package capture

import "sync"

// Frame is one chunk of interleaved PCM-16 samples as delivered by the
// input source.
type Frame []int16

// FrameQueue is a thread-safe FIFO buffer between the producer feeding
// captured audio and the recorder draining it. Frames come out in exactly
// the order they went in; nothing is dropped, merged or deduplicated.
type FrameQueue struct {
	mu     sync.Mutex
	frames []Frame
	closed bool
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Enqueue appends a frame. Frames enqueued after Close are discarded.
func (q *FrameQueue) Enqueue(frame Frame) {
	if len(frame) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.frames = append(q.frames, frame)
}

// TryDequeue pops the oldest frame, returning false when the queue is empty.
func (q *FrameQueue) TryDequeue() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.frames) == 0 {
		return nil, false
	}
	frame := q.frames[0]
	q.frames = q.frames[1:]
	return frame, true
}

// Len reports the number of buffered frames.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Close marks the producer side as finished. Buffered frames remain
// drainable.
func (q *FrameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Closed reports whether the producer has finished.
func (q *FrameQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
