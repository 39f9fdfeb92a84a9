package state

import (
	"classroom_backend/pkg/classroom"
	"sort"
	"strings"
	"sync"
	"time"
)

// Listener 观察每个 action; 在状态替换后于派发的 goroutine 中执行, 不能同步调用 Dispatch
type Listener func(a Action, prev, next State)

type Store struct {
	mu    sync.Mutex
	state State

	notifyMu  sync.Mutex
	listeners map[int]Listener
	nextID    int

	reducer Reducer
	ids     classroom.IDGenerator
	now     func() time.Time
}

type Option func(*Store)

// WithFixtures 替换 SetActiveUser 使用的演示数据
func WithFixtures(f classroom.Fixtures) Option {
	return func(s *Store) { s.reducer.Fixtures = f }
}

func WithIDGenerator(g classroom.IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithInitialUser 首次 SetActiveUser 之前的当前用户
func WithInitialUser(u classroom.User) Option {
	return func(s *Store) { s.state.ActiveUser = u }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state:     State{ActiveUser: classroom.Users[0]},
		listeners: make(map[int]Listener),
		reducer:   Reducer{Fixtures: classroom.DefaultFixtures()},
		ids:       classroom.UUIDGenerator{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = Initial(s.state.ActiveUser, s.reducer.Fixtures)
	return s
}

// State 当前快照
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch 应用 a 并按派发顺序通知监听者
func (s *Store) Dispatch(a Action) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next := s.reducer.Reduce(prev, a)
	s.state = next
	s.mu.Unlock()

	for _, id := range s.listenerIDs() {
		s.listeners[id](a, prev, next)
	}
	return next
}

func (s *Store) listenerIDs() []int {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	// 按注册顺序通知
	sort.Ints(ids)
	return ids
}

// Subscribe 注册 l, 返回取消函数
func (s *Store) Subscribe(l Listener) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.listeners, id)
	}
}

// SwitchUser 切换到名单中的用户, 未知 id 忽略
func (s *Store) SwitchUser(userID string) bool {
	u, ok := classroom.FindUser(userID)
	if !ok {
		return false
	}
	s.Dispatch(SetActiveUser{User: u})
	return true
}

// NextUser 按名单循环切换
func (s *Store) NextUser() classroom.User {
	current := s.State().ActiveUser.ID
	idx := 0
	for i, u := range classroom.Users {
		if u.ID == current {
			idx = (i + 1) % len(classroom.Users)
			break
		}
	}
	u := classroom.Users[idx]
	s.Dispatch(SetActiveUser{User: u})
	return u
}

func (s *Store) Navigate(tab string) {
	s.Dispatch(SetActiveTab{Tab: tab})
}

func (s *Store) SetSubTab(tab SubjectSubTab) {
	s.Dispatch(SetSubjectSubTab{Tab: tab})
}

// OpenNotification 与侧边栏一样跳转到通知链接
func (s *Store) OpenNotification(n classroom.Notification) {
	s.Dispatch(MarkNotificationRead{ID: n.ID})
	s.Dispatch(SelectGroup{})
	if n.Link == "" {
		return
	}
	s.Dispatch(SetActiveTab{Tab: n.Link})
	if strings.HasPrefix(n.Link, subjectTabPrefix) {
		tab := SubTabStream
		if n.Type == classroom.NotificationAssignment {
			tab = SubTabClasswork
		}
		s.Dispatch(SetSubjectSubTab{Tab: tab})
	}
}

// PostDraft 发帖表单内容
type PostDraft struct {
	Title             string
	Content           string
	Deadline          string
	IsAssignment      bool
	IsGroupAssignment bool
	Attachments       []classroom.Attachment
}

// CreatePost 以当前用户在当前课程发帖, 不在课程页时用默认课程
func (s *Store) CreatePost(d PostDraft) classroom.Post {
	st := s.State()
	subjectID, ok := st.ActiveSubjectID()
	if !ok {
		subjectID = classroom.DefaultSubjectID
	}
	attachments := d.Attachments
	if attachments == nil {
		attachments = []classroom.Attachment{}
	}
	post := classroom.Post{
		ID:                s.ids.NewID("p"),
		Author:            st.ActiveUser,
		Title:             d.Title,
		Content:           d.Content,
		Timestamp:         justNow,
		Deadline:          d.Deadline,
		Reactions:         []classroom.PostReaction{},
		Comments:          []classroom.Comment{},
		Attachments:       attachments,
		SubjectID:         subjectID,
		IsAssignment:      d.IsAssignment,
		IsGroupAssignment: d.IsGroupAssignment,
		SimulationStatus:  classroom.StatusPending,
	}
	s.Dispatch(AddPost{Post: post, NotificationID: s.ids.NewID("n")})
	return post
}

func (s *Store) EditPost(postID, content string) {
	s.Dispatch(UpdatePost{PostID: postID, Content: content})
}

func (s *Store) CycleStatus(postID string) {
	s.Dispatch(CycleSimulationStatus{PostID: postID})
}

// AddComment 以当前用户评论, parentID 非空时为回复
func (s *Store) AddComment(postID, parentID, content string) classroom.Comment {
	c := classroom.Comment{
		ID:        s.ids.NewID("c"),
		Author:    s.State().ActiveUser,
		Content:   content,
		Timestamp: justNow,
	}
	s.Dispatch(AddComment{PostID: postID, ParentCommentID: parentID, Comment: c})
	return c
}

// CreateGroup 为当前课程页建组, 名称为空或没有成员时返回 false
func (s *Store) CreateGroup(name string, members []string) (classroom.ChatGroup, bool) {
	if strings.TrimSpace(name) == "" || len(members) == 0 {
		return classroom.ChatGroup{}, false
	}
	subjectID, _ := s.State().ActiveSubjectID()
	g := classroom.ChatGroup{
		ID:        s.ids.NewID("G"),
		Name:      name,
		Members:   append([]string(nil), members...),
		SubjectID: subjectID,
	}
	s.Dispatch(AddGroup{Group: g, NotificationID: s.ids.NewID("n_g_")})
	return g, true
}

func (s *Store) MarkNotificationRead(id string) {
	s.Dispatch(MarkNotificationRead{ID: id})
}

func (s *Store) MarkAllNotificationsRead() {
	s.Dispatch(MarkAllNotificationsRead{})
}

// SendMessage peerID 是已知小组时发群聊, 否则发私信
func (s *Store) SendMessage(peerID, content, replyToID string) classroom.Message {
	st := s.State()
	m := classroom.Message{
		ID:        s.ids.NewID("m"),
		SenderID:  st.ActiveUser.ID,
		Content:   content,
		Timestamp: s.now().Format("15:04"),
		IsRead:    true,
		Reactions: []classroom.MessageReaction{},
		ReplyToID: replyToID,
	}
	if _, ok := st.FindGroup(peerID); ok {
		m.GroupID = peerID
	} else {
		m.ReceiverID = peerID
	}
	s.Dispatch(SendMessage{PeerID: peerID, Message: m})
	return m
}

// OpenConversation 把对方的消息标记为当前用户已读
func (s *Store) OpenConversation(peerID string) {
	s.Dispatch(OpenConversation{PeerID: peerID, ViewerID: s.State().ActiveUser.ID})
}

func (s *Store) ToggleReaction(peerID, messageID, reactionType string) {
	s.Dispatch(ToggleMessageReaction{
		PeerID:    peerID,
		MessageID: messageID,
		Type:      reactionType,
		UserID:    s.State().ActiveUser.ID,
	})
}
