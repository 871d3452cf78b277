package auth

import (
	"sync"

	"mailgate/backend/internal/ews"
)

// SessionRegistry 保存账号到在线会话的映射。
//
// 会话对象不可序列化，只能活在进程内；重启后账号需要重新
// 登录。
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]ews.Session
}

// NewSessionRegistry 创建会话表。
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]ews.Session)}
}

// Put 登记账号的会话，旧会话被替换并关闭。
func (r *SessionRegistry) Put(accountID string, sess ews.Session) {
	r.mu.Lock()
	old, ok := r.sessions[accountID]
	r.sessions[accountID] = sess
	r.mu.Unlock()
	if ok && old != sess {
		_ = old.Close()
	}
}

// Get 取回账号的会话。
func (r *SessionRegistry) Get(accountID string) (ews.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[accountID]
	return sess, ok
}

// Remove 注销并关闭账号的会话。
func (r *SessionRegistry) Remove(accountID string) {
	r.mu.Lock()
	sess, ok := r.sessions[accountID]
	delete(r.sessions, accountID)
	r.mu.Unlock()
	if ok {
		_ = sess.Close()
	}
}

// Len 返回在线会话数量。
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
