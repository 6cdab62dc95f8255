package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"salesdesk/internal/importer"
	"salesdesk/internal/model"
	"salesdesk/internal/parser"
)

// uploadSession 업로드부터 커밋까지 파싱된 파일을 들고 있는 세션
type uploadSession struct {
	branchID  string
	filename  string
	sheet     *parser.Sheet
	mapping   model.ColumnMapping
	prepared  *importer.Prepared // 매핑 확정 전에는 nil
	expiresAt time.Time
}

type uploadSessionStore struct {
	mu    sync.Mutex
	items map[string]*uploadSession
}

func newUploadSessionStore() *uploadSessionStore {
	return &uploadSessionStore{
		items: make(map[string]*uploadSession),
	}
}

func (s *uploadSessionStore) put(sess *uploadSession, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	sess.expiresAt = time.Now().Add(ttl)
	s.items[token] = sess
	return token
}

// get 세션 사본을 돌려준다
func (s *uploadSessionStore) get(token string) (uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return uploadSession{}, false
	}
	return *v, true
}

func (s *uploadSessionStore) setPrepared(token string, mapping model.ColumnMapping, prepared *importer.Prepared) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok || time.Now().After(v.expiresAt) {
		return false
	}
	v.mapping = mapping
	v.prepared = prepared
	return true
}

// take 커밋용으로 세션을 꺼내면서 제거한다 (같은 세션 중복 커밋 방지)
func (s *uploadSessionStore) take(token string) (uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok {
		return uploadSession{}, false
	}
	delete(s.items, token)
	if time.Now().After(v.expiresAt) {
		return uploadSession{}, false
	}
	return *v, true
}

func (s *uploadSessionStore) delete(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[token]
	delete(s.items, token)
	return ok
}

func (s *uploadSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(time.Now())
	return len(s.items)
}

func (s *uploadSessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
