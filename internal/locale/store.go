// Package locale owns the active display language and keeps it durable
// across restarts.
package locale

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/observable"
)

const storageKey = "language"

type Store struct {
	current    *observable.Value[Language]
	storage    kvstore.Store
	translator *Translator
	logger     *logrus.Logger

	persistMu sync.Mutex
	pending   sync.WaitGroup
}

func NewStore(storage kvstore.Store, logger *logrus.Logger) *Store {
	return &Store{
		current:    observable.New(Default),
		storage:    storage,
		translator: NewTranslator(),
		logger:     logger,
	}
}

// Load reads the persisted language, using Default when it is absent or not
// a supported value.
func (s *Store) Load(ctx context.Context) Language {
	stored, err := s.storage.GetItem(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.WithError(err).Warn("Locale.Load.storage")
		}
		s.current.Set(Default)
		return Default
	}

	lng := Language(stored)
	if !lng.Valid() {
		s.logger.WithField("stored", stored).Warn("Locale.Load.invalid")
		lng = Default
	}
	s.current.Set(lng)
	return lng
}

func (s *Store) Language() Language {
	return s.current.Get()
}

// ChangeLanguage applies lng in memory before returning and persists it in
// the background. Persistence failures are logged only.
func (s *Store) ChangeLanguage(ctx context.Context, lng Language) error {
	if !lng.Valid() {
		return ErrUnsupportedLanguage
	}

	s.current.Set(lng)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persist(context.WithoutCancel(ctx))
	}()
	return nil
}

// persist writes whatever is current at write time so that overlapping
// changes always leave the latest value on disk.
func (s *Store) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	lng := s.current.Get()
	if err := s.storage.SetItem(ctx, storageKey, string(lng)); err != nil {
		s.logger.WithError(err).WithField("language", lng).Warn("Locale.ChangeLanguage.persist")
	}
}

// Wait blocks until in-flight persistence has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

func (s *Store) Subscribe(fn func(Language)) (unsubscribe func()) {
	return s.current.Subscribe(fn)
}

// T translates key in the active language.
func (s *Store) T(key string, args ...interface{}) string {
	return s.translator.Translate(s.current.Get(), key, args...)
}
