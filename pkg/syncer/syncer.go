// Package syncer 把 state store 同步到后端和本地快照
package syncer

import (
	"classroom_backend/pkg/classroom"
	"classroom_backend/pkg/state"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Remote 后端存储; 用户从未保存时 FetchBundle 返回 classroom.ErrBundleNotFound
type Remote interface {
	Health(ctx context.Context) error
	FetchBundle(ctx context.Context, userID string) (classroom.Bundle, error)
	SaveBundle(ctx context.Context, userID string, b classroom.Bundle) error
}

// Local 本地兜底快照; 没有快照时 Load 返回 classroom.ErrBundleNotFound
type Local interface {
	Load(userID string) (classroom.Bundle, error)
	Save(userID string, b classroom.Bundle) error
}

type Op string

const (
	OpHealth     Op = "health"
	OpFetch      Op = "fetch"
	OpRemoteSave Op = "remote_save"
	OpLocalLoad  Op = "local_load"
	OpLocalSave  Op = "local_save"
)

// Source 恢复数据的来源
type Source int

const (
	SourceDefaults Source = iota
	SourceRemote
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "defaults"
	}
}

type Options struct {
	Logger *zap.Logger
	// OnError 每次操作失败时调用, 快照不存在不算失败
	OnError func(op Op, userID string, err error)
	// ReportFailures 为 true 时失败按 WARN 记录, 否则 DEBUG
	ReportFailures bool
	// RequestTimeout 单次远程调用超时, 0 表示不限制
	RequestTimeout time.Duration
}

// job 为 persist 时 bundle 是入队时的快照, 仅在用户已切走时使用
type job struct {
	restore bool
	userID  string
	bundle  classroom.Bundle
	// 入队时同一用户的恢复尚未完成, 快照早于恢复结果
	stale bool
}

type Synchronizer struct {
	store  *state.Store
	remote Remote
	local  Local
	opts   Options
	log    *zap.Logger

	mu        sync.Mutex
	reachable bool
	queue     []job
	restoring string
	closed    bool
	wake      chan struct{}
	pending   sync.WaitGroup

	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
}

// New 组装同步器; remote 为 nil 时只写本地
func New(store *state.Store, remote Remote, local Local, opts Options) *Synchronizer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{
		store:  store,
		remote: remote,
		local:  local,
		opts:   opts,
		log:    log.Named("syncer"),
		wake:   make(chan struct{}, 1),
	}
}

// Start 订阅 store 并在后台恢复当前用户, 任务在单个 goroutine 上按派发顺序执行
func (s *Synchronizer) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run()

	s.unsubscribe = s.store.Subscribe(s.onAction)
	s.enqueue(job{restore: true, userID: s.store.State().ActiveUser.ID})
}

// Stop 取消订阅, 等待已入队任务完成后停止 worker
func (s *Synchronizer) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.Wait()
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

// Wait 阻塞到队列中的任务全部执行完
func (s *Synchronizer) Wait() {
	s.pending.Wait()
}

// Reachable 最近一次健康检查的结果
func (s *Synchronizer) Reachable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reachable
}

func (s *Synchronizer) onAction(a state.Action, prev, next state.State) {
	switch a.(type) {
	case state.SetActiveUser:
		s.enqueue(job{restore: true, userID: next.ActiveUser.ID})
	case state.RestoreBundle:
		// 恢复的数据来自存储本身, 不再回写
	default:
		if state.BundleChanged(prev, next) {
			s.enqueue(job{userID: next.ActiveUser.ID, bundle: next.Bundle()})
		}
	}
}

func (s *Synchronizer) enqueue(j job) {
	s.mu.Lock()
	if s.closed {
		// worker 已退出, 没有人会执行这个任务
		s.mu.Unlock()
		return
	}
	if !j.restore {
		j.stale = s.restorePendingLocked(j.userID)
		// 同一用户连续的保存只保留最后一个
		if n := len(s.queue); n > 0 && !s.queue[n-1].restore && s.queue[n-1].userID == j.userID {
			s.queue[n-1] = j
			s.mu.Unlock()
			return
		}
	}
	s.pending.Add(1)
	s.queue = append(s.queue, j)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Synchronizer) restorePendingLocked(userID string) bool {
	if s.restoring == userID {
		return true
	}
	for _, q := range s.queue {
		if q.restore && q.userID == userID {
			return true
		}
	}
	return false
}

func (s *Synchronizer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.drop()
			return
		case <-s.wake:
		}
		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			j := s.queue[0]
			s.queue = s.queue[1:]
			if j.restore {
				s.restoring = j.userID
			}
			s.mu.Unlock()

			if j.restore {
				s.Restore(s.ctx, j.userID)
				s.mu.Lock()
				s.restoring = ""
				s.mu.Unlock()
			} else {
				s.persistJob(j)
			}
			s.pending.Done()
		}
	}
}

// persistJob 用户仍在线时保存执行时刻的 store 状态, 这样恢复结果不会被旧快照覆盖
func (s *Synchronizer) persistJob(j job) {
	st := s.store.State()
	switch {
	case st.ActiveUser.ID == j.userID:
		_ = s.Persist(s.ctx, j.userID, st.Bundle())
	case j.stale:
		// 快照基于恢复前的默认数据, 写回会覆盖用户已保存的内容
		s.log.Debug("dropping save queued before restore", zap.String("user_id", j.userID))
	default:
		_ = s.Persist(s.ctx, j.userID, j.bundle)
	}
}

// drop 取消后释放剩余任务, 之后的 enqueue 直接丢弃
func (s *Synchronizer) drop() {
	s.mu.Lock()
	n := len(s.queue)
	s.queue = nil
	s.closed = true
	s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.pending.Done()
	}
}

// Restore 只做一次健康检查, 依次尝试远程, 本地快照, 都没有时保留 store 中的默认数据;
// 读到的快照以 RestoreBundle 派发
func (s *Synchronizer) Restore(ctx context.Context, userID string) Source {
	if s.checkHealth(ctx) {
		b, err := s.fetch(ctx, userID)
		if err == nil {
			s.store.Dispatch(state.RestoreBundle{UserID: userID, Bundle: b})
			return SourceRemote
		}
		if !errors.Is(err, classroom.ErrBundleNotFound) {
			s.report(OpFetch, userID, err)
		}
	}

	if s.local == nil {
		return SourceDefaults
	}
	b, err := s.local.Load(userID)
	if err != nil {
		if !errors.Is(err, classroom.ErrBundleNotFound) {
			s.report(OpLocalLoad, userID, err)
		}
		return SourceDefaults
	}
	s.store.Dispatch(state.RestoreBundle{UserID: userID, Bundle: b})
	return SourceLocal
}

// Persist 最近一次健康检查成功时写远程, 本地总是写; 远程失败只上报不重试, 返回本地错误
func (s *Synchronizer) Persist(ctx context.Context, userID string, b classroom.Bundle) error {
	if s.remote != nil && s.Reachable() {
		rctx, cancel := s.withTimeout(ctx)
		err := s.remote.SaveBundle(rctx, userID, b)
		cancel()
		if err != nil {
			s.report(OpRemoteSave, userID, err)
		}
	}

	if s.local == nil {
		return nil
	}
	if err := s.local.Save(userID, b); err != nil {
		s.report(OpLocalSave, userID, err)
		return err
	}
	return nil
}

func (s *Synchronizer) checkHealth(ctx context.Context) bool {
	ok := false
	if s.remote != nil {
		rctx, cancel := s.withTimeout(ctx)
		err := s.remote.Health(rctx)
		cancel()
		if err != nil {
			s.report(OpHealth, "", err)
		}
		ok = err == nil
	}
	s.mu.Lock()
	s.reachable = ok
	s.mu.Unlock()
	return ok
}

func (s *Synchronizer) fetch(ctx context.Context, userID string) (classroom.Bundle, error) {
	rctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.remote.FetchBundle(rctx, userID)
}

func (s *Synchronizer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.RequestTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Synchronizer) report(op Op, userID string, err error) {
	if s.opts.OnError != nil {
		s.opts.OnError(op, userID, err)
	}
	fields := []zap.Field{zap.String("op", string(op)), zap.Error(err)}
	if userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	if s.opts.ReportFailures {
		s.log.Warn("sync operation failed", fields...)
		return
	}
	s.log.Debug("sync operation failed", fields...)
}
