// Package state 客户端状态仓库: 不可变的 State, 封闭的 action 集合和纯函数 reducer, 由 Store 封装
package state

import (
	"classroom_backend/pkg/classroom"
	"reflect"
	"strings"
)

type SubjectSubTab string

const (
	SubTabStream    SubjectSubTab = "stream"
	SubTabClasswork SubjectSubTab = "classwork"
	SubTabGroups    SubjectSubTab = "groups"
	SubTabTodo      SubjectSubTab = "todo"
)

const (
	TabHome = "home"
	TabChat = "chat"
	TabTodo = "todo"

	subjectTabPrefix = "subject-"
)

// SubjectTab 课程页对应的导航标签
func SubjectTab(subjectID string) string {
	return subjectTabPrefix + subjectID
}

// State 是快照; 切片和 map 在快照间共享, 只读使用, reducer 修改前会复制
type State struct {
	ActiveUser    classroom.User
	ActiveTab     string
	SubjectSubTab SubjectSubTab
	SelectedGroup *classroom.ChatGroup
	SidebarOpen   bool

	Posts         []classroom.Post
	Groups        []classroom.ChatGroup
	Notifications []classroom.Notification
	ChatHistories classroom.ChatHistories
}

// Initial 切换用户前的初始状态
func Initial(user classroom.User, fixtures classroom.Fixtures) State {
	b := fixtures.For(user.ID)
	return State{
		ActiveUser:    user,
		ActiveTab:     TabHome,
		SubjectSubTab: SubTabStream,
		Posts:         b.Posts,
		Groups:        b.Groups,
		Notifications: b.Notifications,
		ChatHistories: b.ChatHistories,
	}
}

// ActiveSubjectID 从 "subject-<id>" 标签取课程 id
func (s State) ActiveSubjectID() (string, bool) {
	if !strings.HasPrefix(s.ActiveTab, subjectTabPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(s.ActiveTab, subjectTabPrefix)
	return id, id != ""
}

func (s State) Bundle() classroom.Bundle {
	return classroom.Bundle{
		Posts:         s.Posts,
		Groups:        s.Groups,
		Notifications: s.Notifications,
		ChatHistories: s.ChatHistories,
	}
}

func (s State) FindPost(id string) (classroom.Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return classroom.Post{}, false
}

func (s State) FindGroup(id string) (classroom.ChatGroup, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return classroom.ChatGroup{}, false
}

// UnreadFrom 统计会话中非 viewerID 发送的未读消息
func (s State) UnreadFrom(peerID, viewerID string) int {
	n := 0
	for _, m := range s.ChatHistories[peerID] {
		if !m.IsRead && m.SenderID != viewerID {
			n++
		}
	}
	return n
}

// BundleChanged 比较两个快照中需要持久化的集合是否为同一引用;
// reducer 会复用未修改的集合, 比较引用即可
func BundleChanged(prev, next State) bool {
	return !sameRef(prev.Posts, next.Posts) ||
		!sameRef(prev.Groups, next.Groups) ||
		!sameRef(prev.Notifications, next.Notifications) ||
		!sameRef(prev.ChatHistories, next.ChatHistories)
}

func sameRef(a, b interface{}) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Len() != vb.Len() {
		return false
	}
	if va.Len() == 0 {
		return true
	}
	return va.Pointer() == vb.Pointer()
}
