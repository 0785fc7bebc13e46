package board

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"zenban/internal/domain"
)

// TagAPI issues the server calls behind the tag flow.
type TagAPI interface {
	ListBoardTags(ctx context.Context, boardID int) ([]domain.Tag, error)
	CreateBoardTag(ctx context.Context, boardID int, name, color string) (*domain.Tag, error)
	ListTaskTags(ctx context.Context, taskID int) ([]domain.TagRef, error)
	AddTaskTag(ctx context.Context, taskID, tagID int) error
	RemoveTaskTag(ctx context.Context, taskID, tagID int) error
}

// TagFlow manages the tags of one task: a reconciling load plus
// optimistic add/remove with full snapshot rollback on failure. Unlike
// the move engine, a failed mutation here restores the exact
// pre-mutation state.
//
// Mutations run from UI goroutines while the render loop reads the
// lists, so all state lives behind the mutex. The server call itself
// runs unlocked; the lock covers only the splice, settle and accessors.
type TagFlow struct {
	api     TagAPI
	boardID int
	taskID  int

	mu        sync.Mutex
	taskTags  []domain.Tag
	available []domain.Tag

	// pending blocks concurrent mutations and the reconciling load
	// while a mutation's server call is outstanding. Checked and set
	// atomically with the optimistic splice.
	pending bool
}

// NewTagFlow creates a TagFlow for one task.
func NewTagFlow(api TagAPI, boardID, taskID int) *TagFlow {
	return &TagFlow{api: api, boardID: boardID, taskID: taskID}
}

// TaskTags returns a snapshot of the tags currently on the task.
func (f *TagFlow) TaskTags() []domain.Tag {
	f.mu.Lock()
	defer f.mu.Unlock()
	return snapshotTags(f.taskTags)
}

// Available returns a snapshot of the board tags not yet on the task.
func (f *TagFlow) Available() []domain.Tag {
	f.mu.Lock()
	defer f.mu.Unlock()
	return snapshotTags(f.available)
}

// Pending reports whether a mutation is outstanding.
func (f *TagFlow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Load fetches board-level and task-level tags and reconciles them:
// available = board tags minus task tags, compared by normalized tag id
// so wrapped task-tag records match their board counterparts. When the
// board has no tags at all, the built-in placeholder set is substituted
// so the picker is never empty. Skipped while a mutation is pending;
// a reload that raced a mutation is dropped rather than clobbering the
// optimistic lists.
func (f *TagFlow) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	boardTags, err := f.api.ListBoardTags(ctx, f.boardID)
	if err != nil {
		return fmt.Errorf("loading board tags: %w", err)
	}
	refs, err := f.api.ListTaskTags(ctx, f.taskID)
	if err != nil {
		return fmt.Errorf("loading task tags: %w", err)
	}

	if len(boardTags) == 0 {
		boardTags = domain.PlaceholderTags()
	}

	taskTags := make([]domain.Tag, 0, len(refs))
	onTask := make(map[int]bool, len(refs))
	for _, ref := range refs {
		taskTags = append(taskTags, ref.Tag())
		onTask[ref.TagID()] = true
	}

	available := make([]domain.Tag, 0, len(boardTags))
	for _, tag := range boardTags {
		if !onTask[tag.ID] {
			available = append(available, tag)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending {
		return nil
	}
	f.taskTags = taskTags
	f.available = available
	return nil
}

// Add optimistically attaches the given available tag to the task. The
// splice happens under the lock, atomically with the pending check, so
// a second mutation dispatched before the first settles is a no-op. A
// placeholder tag is first materialized: created on the board to obtain
// its real id, which is then used for the assignment. The negative
// placeholder id is never sent. On failure both lists are restored to
// their exact pre-mutation state and the error is returned.
func (f *TagFlow) Add(ctx context.Context, tagID int) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return nil
	}
	idx := -1
	for i, t := range f.available {
		if t.ID == tagID {
			idx = i
			break
		}
	}
	if idx == -1 {
		f.mu.Unlock()
		return nil
	}
	tag := f.available[idx]

	prevTask := snapshotTags(f.taskTags)
	prevAvail := snapshotTags(f.available)

	f.taskTags = append(snapshotTags(f.taskTags), tag)
	f.available = append(f.available[:idx:idx], f.available[idx+1:]...)
	f.pending = true
	f.mu.Unlock()

	persisted, err := f.attach(ctx, tag)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.taskTags = prevTask
		f.available = prevAvail
		return err
	}
	if persisted != nil {
		// The placeholder is fully replaced by the persisted tag.
		f.replaceTagLocked(tag.ID, *persisted)
	}
	return nil
}

// attach performs the server half of Add: materialize a placeholder if
// needed, then assign. Returns the persisted tag when one was created.
func (f *TagFlow) attach(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	assignID := tag.ID
	var persisted *domain.Tag
	if tag.IsPlaceholder() {
		created, err := f.api.CreateBoardTag(ctx, f.boardID, tag.Name, tag.Color)
		if err != nil {
			return nil, fmt.Errorf("materializing tag %q: %w", tag.Name, err)
		}
		assignID = created.ID
		persisted = created
	}
	if err := f.api.AddTaskTag(ctx, f.taskID, assignID); err != nil {
		return nil, fmt.Errorf("adding tag %q: %w", tag.Name, err)
	}
	return persisted, nil
}

// replaceTagLocked swaps an optimistically-added placeholder for its
// persisted tag in the task list. Caller holds the lock.
func (f *TagFlow) replaceTagLocked(placeholderID int, persisted domain.Tag) {
	for i, t := range f.taskTags {
		if t.ID == placeholderID {
			f.taskTags[i] = persisted
			return
		}
	}
}

// Remove optimistically detaches a tag from the task, returning it to
// the available list sorted by name. On failure both lists are restored.
func (f *TagFlow) Remove(ctx context.Context, tagID int) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return nil
	}
	idx := -1
	for i, t := range f.taskTags {
		if t.ID == tagID {
			idx = i
			break
		}
	}
	if idx == -1 {
		f.mu.Unlock()
		return nil
	}
	tag := f.taskTags[idx]

	prevTask := snapshotTags(f.taskTags)
	prevAvail := snapshotTags(f.available)

	f.taskTags = append(f.taskTags[:idx:idx], f.taskTags[idx+1:]...)
	f.available = append(snapshotTags(f.available), tag)
	sort.Slice(f.available, func(i, j int) bool {
		return f.available[i].Name < f.available[j].Name
	})
	f.pending = true
	f.mu.Unlock()

	err := f.api.RemoveTaskTag(ctx, f.taskID, tagID)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.taskTags = prevTask
		f.available = prevAvail
		return fmt.Errorf("removing tag %q: %w", tag.Name, err)
	}
	return nil
}

func snapshotTags(tags []domain.Tag) []domain.Tag {
	out := make([]domain.Tag, len(tags))
	copy(out, tags)
	return out
}
