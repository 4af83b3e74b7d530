// Package inventory owns the persisted category document and the
// read-modify-write sequence every mutation follows.
//
// Each operation reads the whole document, changes an in-memory copy, and
// writes the whole document back. Failed lookups and validation abort before
// the write, so a failing call never changes what is stored.
package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/model"
)

// KV is the slice of the storage port the store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store is the inventory. Safe for use by several goroutines of one process;
// writers in other processes are last-writer-wins.
type Store struct {
	kv    KV
	log   *zap.Logger
	newID func() string
	move  bool

	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// WithMoveOnRecategorize controls what UpdateItem does when the category
// field changes: move the item (true) or edit it in place (false).
func WithMoveOnRecategorize(move bool) Option { return func(s *Store) { s.move = move } }

func WithIDGenerator(f func() string) Option { return func(s *Store) { s.newID = f } }

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		log:   zap.NewNop(),
		newID: func() string { return uuid.NewString() },
		move:  true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// load reads the document; a missing key is an empty inventory.
func (s *Store) load(ctx context.Context) ([]model.Category, error) {
	raw, ok, err := s.kv.Get(ctx, model.DocumentKey)
	if err != nil {
		s.log.Error("read document", zap.Error(err))
		return nil, &StorageError{Op: "load", Err: err}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Category{}, nil
	}
	cats, backfilled, err := model.Decode(raw)
	if err != nil {
		s.log.Error("decode document", zap.Error(err))
		return nil, &StorageError{Op: "decode", Err: err}
	}
	if backfilled {
		s.log.Debug("assigned ids to legacy categories")
	}
	return cats, nil
}

func (s *Store) save(ctx context.Context, cats []model.Category) error {
	raw, err := model.Encode(cats)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Set(ctx, model.DocumentKey, raw); err != nil {
		s.log.Error("write document", zap.Error(err))
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) notFound(op string, err error, fields ...zap.Field) error {
	s.log.Warn(op+": lookup failed, nothing written", append(fields, zap.Error(err))...)
	return err
}

// findCategory returns the index of the first category ref names.
func findCategory(cats []model.Category, ref string) int {
	if i := slices.IndexFunc(cats, func(c model.Category) bool { return c.ID == ref && ref != "" }); i >= 0 {
		return i
	}
	return slices.IndexFunc(cats, func(c model.Category) bool { return c.Matches(ref) })
}

func findItem(items []model.Item, id string) int {
	return slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
}

// ListCategories returns the whole document.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// AddCategory appends an empty category named by the trimmed name.
func (s *Store) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, &ValidationError{Field: "category", Msg: "Category name is required."}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return model.Category{}, err
	}
	c := model.Category{
		ID:    s.newID(),
		Key:   model.NextKey(cats),
		Value: name,
		Items: []model.Item{},
	}
	cats = append(cats, c)
	if err := s.save(ctx, cats); err != nil {
		return model.Category{}, err
	}
	s.log.Info("category added", zap.Int("key", c.Key), zap.String("category", c.Value))
	return c, nil
}

// DeleteCategory removes the category with key and every item in it.
func (s *Store) DeleteCategory(ctx context.Context, key int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(cats), func(c model.Category) bool { return c.Key == key })
	if len(kept) == len(cats) {
		return s.notFound("delete category", fmt.Errorf("category key %d: %w", key, ErrNotFound), zap.Int("key", key))
	}
	if err := s.save(ctx, kept); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.Int("key", key))
	return nil
}

// AddItem validates f and appends a new unchecked item to the category ref names.
func (s *Store) AddItem(ctx context.Context, categoryRef string, f model.ItemFields) (model.Item, error) {
	if err := validationFrom(f.Validate()); err != nil {
		return model.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return model.Item{}, err
	}
	ci := findCategory(cats, categoryRef)
	if ci < 0 {
		return model.Item{}, s.notFound("add item", categoryNotFound(categoryRef), zap.String("category", categoryRef))
	}
	it := f.Apply(model.Item{ID: s.newID()})
	it.Category = cats[ci].Value
	cats[ci].Items = append(cats[ci].Items, it)
	if err := s.save(ctx, cats); err != nil {
		return model.Item{}, err
	}
	s.log.Info("item added", zap.String("category", cats[ci].Value), zap.String("item", it.ID))
	return it, nil
}

// UpdateItem overwrites the editable fields of an item, keeping its id and
// check state. A changed category moves the item when the store is
// configured to; otherwise the item stays where it was.
func (s *Store) UpdateItem(ctx context.Context, categoryRef, itemID string, f model.ItemFields) (model.Item, error) {
	if err := validationFrom(f.Validate()); err != nil {
		return model.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return model.Item{}, err
	}
	ci := findCategory(cats, categoryRef)
	if ci < 0 {
		return model.Item{}, s.notFound("update item", categoryNotFound(categoryRef), zap.String("category", categoryRef))
	}
	ii := findItem(cats[ci].Items, itemID)
	if ii < 0 {
		return model.Item{}, s.notFound("update item", itemNotFound(categoryRef, itemID),
			zap.String("category", categoryRef), zap.String("item", itemID))
	}

	updated := f.Apply(cats[ci].Items[ii])
	target := ci
	if s.move && !cats[ci].Matches(f.Category) {
		target = findCategory(cats, f.Category)
		if target < 0 {
			return model.Item{}, s.notFound("update item", categoryNotFound(f.Category), zap.String("category", f.Category))
		}
	}
	if s.move {
		updated.Category = cats[target].Value
	}
	if target == ci {
		cats[ci].Items[ii] = updated
	} else {
		cats[ci].Items = slices.Delete(cats[ci].Items, ii, ii+1)
		cats[target].Items = append(cats[target].Items, updated)
	}
	if err := s.save(ctx, cats); err != nil {
		return model.Item{}, err
	}
	s.log.Info("item updated",
		zap.String("category", cats[target].Value), zap.String("item", itemID), zap.Bool("moved", target != ci))
	return updated, nil
}

// DeleteItem splices the item out of its category.
func (s *Store) DeleteItem(ctx context.Context, categoryRef, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return err
	}
	ci := findCategory(cats, categoryRef)
	if ci < 0 {
		return s.notFound("delete item", categoryNotFound(categoryRef), zap.String("category", categoryRef))
	}
	ii := findItem(cats[ci].Items, itemID)
	if ii < 0 {
		return s.notFound("delete item", itemNotFound(categoryRef, itemID),
			zap.String("category", categoryRef), zap.String("item", itemID))
	}
	cats[ci].Items = slices.Delete(cats[ci].Items, ii, ii+1)
	if err := s.save(ctx, cats); err != nil {
		return err
	}
	s.log.Info("item deleted", zap.String("category", cats[ci].Value), zap.String("item", itemID))
	return nil
}

// ToggleChecked flips the item's check flag and returns the new value.
func (s *Store) ToggleChecked(ctx context.Context, categoryRef, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	ci := findCategory(cats, categoryRef)
	if ci < 0 {
		return false, s.notFound("toggle item", categoryNotFound(categoryRef), zap.String("category", categoryRef))
	}
	ii := findItem(cats[ci].Items, itemID)
	if ii < 0 {
		return false, s.notFound("toggle item", itemNotFound(categoryRef, itemID),
			zap.String("category", categoryRef), zap.String("item", itemID))
	}
	it := &cats[ci].Items[ii]
	it.Check = !it.Check
	if err := s.save(ctx, cats); err != nil {
		return false, err
	}
	s.log.Debug("item toggled", zap.String("item", itemID), zap.Bool("check", it.Check))
	return it.Check, nil
}

// FindItem looks an item up without writing anything.
func (s *Store) FindItem(ctx context.Context, categoryRef, itemID string) (model.Category, model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return model.Category{}, model.Item{}, err
	}
	ci := findCategory(cats, categoryRef)
	if ci < 0 {
		return model.Category{}, model.Item{}, categoryNotFound(categoryRef)
	}
	ii := findItem(cats[ci].Items, itemID)
	if ii < 0 {
		return model.Category{}, model.Item{}, itemNotFound(categoryRef, itemID)
	}
	return cats[ci], cats[ci].Items[ii], nil
}
