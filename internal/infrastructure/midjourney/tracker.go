package midjourney

import (
	"fmt"
	"sync"
	"time"

	"github.com/janhq/imagine-api/internal/domain/imagine"
)

type outcome struct {
	msg *imagine.Message
	err error
}

// job is one interaction waiting for its finished message.
type job struct {
	nonce     string
	action    Action
	prompt    string
	sourceID  string
	progress  imagine.ProgressFunc
	startedAt time.Time
	done      chan outcome

	// guarded by tracker.mu
	interactionID string
	messageID     string
}

func newJob(nonce string, action Action, progress imagine.ProgressFunc) *job {
	return &job{
		nonce:     nonce,
		action:    action,
		progress:  progress,
		startedAt: time.Now(),
		done:      make(chan outcome, 1),
	}
}

// tracker routes gateway events to pending jobs.
type tracker struct {
	mu   sync.Mutex
	jobs map[string]*job
	// order keeps insertion order so ambiguous matches resolve to the oldest job
	order []string
}

func newTracker() *tracker {
	return &tracker{jobs: make(map[string]*job)}
}

func (t *tracker) add(j *job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[j.nonce] = j
	t.order = append(t.order, j.nonce)
}

func (t *tracker) remove(nonce string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(nonce)
}

func (t *tracker) removeLocked(nonce string) {
	if _, ok := t.jobs[nonce]; !ok {
		return
	}
	delete(t.jobs, nonce)
	for i, n := range t.order {
		if n == nonce {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *tracker) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

func (t *tracker) bindInteraction(nonce, interactionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if j, ok := t.jobs[nonce]; ok {
		j.interactionID = interactionID
	}
}

// fail resolves the job started with nonce with err.
func (t *tracker) fail(nonce string, err error) {
	t.mu.Lock()
	j, ok := t.jobs[nonce]
	if ok {
		t.removeLocked(nonce)
	}
	t.mu.Unlock()
	if ok {
		j.done <- outcome{err: err}
	}
}

// failAll resolves every pending job with err.
func (t *tracker) failAll(err error) {
	t.mu.Lock()
	jobs := make([]*job, 0, len(t.jobs))
	for _, n := range t.order {
		jobs = append(jobs, t.jobs[n])
	}
	t.jobs = make(map[string]*job)
	t.order = nil
	t.mu.Unlock()

	for _, j := range jobs {
		j.done <- outcome{err: err}
	}
}

// matchLocked finds the job a bot message belongs to.
func (t *tracker) matchLocked(msg *message) *job {
	if nonce := nonceString(msg.Nonce); nonce != "" {
		if j, ok := t.jobs[nonce]; ok {
			return j
		}
	}

	interactionID := ""
	if msg.InteractionMetadata != nil {
		interactionID = msg.InteractionMetadata.ID
	} else if msg.Interaction != nil {
		interactionID = msg.Interaction.ID
	}

	for _, n := range t.order {
		j := t.jobs[n]
		if interactionID != "" && j.interactionID == interactionID {
			return j
		}
		if j.messageID != "" && j.messageID == msg.ID {
			return j
		}
	}

	if msg.MessageReference != nil && msg.MessageReference.MessageID != "" {
		for _, n := range t.order {
			if j := t.jobs[n]; j.sourceID == msg.MessageReference.MessageID {
				return j
			}
		}
	}

	if prompt := extractPrompt(msg.Content); prompt != "" {
		for _, n := range t.order {
			if j := t.jobs[n]; j.action == ActionImagine && j.prompt != "" && prompt == j.prompt {
				return j
			}
		}
	}
	return nil
}

// handleCreate processes MESSAGE_CREATE from the bot.
func (t *tracker) handleCreate(msg *message) {
	t.mu.Lock()
	j := t.matchLocked(msg)
	if j == nil {
		t.mu.Unlock()
		return
	}
	if nonceString(msg.Nonce) == j.nonce {
		j.messageID = msg.ID
	}

	var result outcome
	switch {
	case embedError(msg) != nil:
		result = outcome{err: embedError(msg)}
	case isFinished(msg):
		result = outcome{msg: toImagineMessage(msg, "done")}
	default:
		t.mu.Unlock()
		return
	}
	t.removeLocked(j.nonce)
	t.mu.Unlock()

	j.done <- result
}

// handleUpdate processes MESSAGE_UPDATE from the bot; progress callbacks run
// on the caller's goroutine, outside the lock.
func (t *tracker) handleUpdate(msg *message) {
	t.mu.Lock()
	j := t.matchLocked(msg)
	if j == nil {
		t.mu.Unlock()
		return
	}
	if err := embedError(msg); err != nil {
		t.removeLocked(j.nonce)
		t.mu.Unlock()
		j.done <- outcome{err: err}
		return
	}
	t.mu.Unlock()

	progress := parseProgress(msg.Content)
	if progress == "" || len(msg.Attachments) == 0 || j.progress == nil {
		return
	}
	j.progress(msg.Attachments[0].URL, progress)
}

func (j *job) String() string {
	return fmt.Sprintf("%s[%s]", j.action, j.nonce)
}
