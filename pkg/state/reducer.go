package state

import (
	"classroom_backend/pkg/classroom"
	"fmt"
	"strings"
)

const (
	// 客户端展示用的相对时间
	justNow = "今"

	assignmentNotificationTitle = "課題が追加されました"
	groupNotificationTitle      = "班への配属"
)

// Reducer 应用 action, Fixtures 决定 SetActiveUser 载入的数据
type Reducer struct {
	Fixtures classroom.Fixtures
}

// Reduce 使用默认演示数据应用 a
func Reduce(s State, a Action) State {
	return Reducer{Fixtures: classroom.DefaultFixtures()}.Reduce(s, a)
}

// Reduce 不修改 s; 未变化的集合原样返回, 引用未知 id 时状态不变
func (r Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetActiveUser:
		b := r.Fixtures.For(a.User.ID)
		s.ActiveUser = a.User
		s.Posts = b.Posts
		s.Groups = b.Groups
		s.Notifications = b.Notifications
		s.ChatHistories = b.ChatHistories
		s.SelectedGroup = nil
		s.ActiveTab = TabHome
	case SetActiveTab:
		s.ActiveTab = a.Tab
	case SetSubjectSubTab:
		s.SubjectSubTab = a.Tab
	case SelectGroup:
		s.SelectedGroup = a.Group
	case ToggleSidebar:
		s.SidebarOpen = !s.SidebarOpen
	case SetPosts:
		s.Posts = a.Posts
	case SetGroups:
		s.Groups = a.Groups
	case SetNotifications:
		s.Notifications = a.Notifications
	case AddPost:
		return addPost(s, a)
	case UpdatePost:
		s.Posts = updatePost(s.Posts, a.PostID, func(p *classroom.Post) bool {
			if p.Content == a.Content {
				return false
			}
			p.Content = a.Content
			return true
		})
	case CycleSimulationStatus:
		s.Posts = updatePost(s.Posts, a.PostID, func(p *classroom.Post) bool {
			p.SimulationStatus = p.SimulationStatus.Next()
			return true
		})
	case AddComment:
		s.Posts = updatePost(s.Posts, a.PostID, func(p *classroom.Post) bool {
			comments, ok := appendComment(p.Comments, a.ParentCommentID, a.Comment)
			if ok {
				p.Comments = comments
			}
			return ok
		})
	case AddGroup:
		return addGroup(s, a)
	case AddNotification:
		s.Notifications = prepend(s.Notifications, a.Notification)
	case MarkNotificationRead:
		s.Notifications = markRead(s.Notifications, func(n classroom.Notification) bool {
			return n.ID == a.ID
		})
	case MarkAllNotificationsRead:
		s.Notifications = markRead(s.Notifications, func(classroom.Notification) bool {
			return true
		})
	case SendMessage:
		if a.PeerID == "" {
			return s
		}
		s.ChatHistories = withConversation(s.ChatHistories, a.PeerID, appendMessage(s.ChatHistories[a.PeerID], a.Message))
	case OpenConversation:
		return openConversation(s, a)
	case ToggleMessageReaction:
		return toggleReaction(s, a)
	case RestoreBundle:
		if a.UserID != s.ActiveUser.ID {
			return s
		}
		if a.Bundle.Posts != nil {
			s.Posts = a.Bundle.Posts
		}
		if a.Bundle.Groups != nil {
			s.Groups = a.Bundle.Groups
		}
		if a.Bundle.Notifications != nil {
			s.Notifications = a.Bundle.Notifications
		}
		if a.Bundle.ChatHistories != nil {
			s.ChatHistories = a.Bundle.ChatHistories
		}
	}
	return s
}

func addPost(s State, a AddPost) State {
	post := a.Post
	if post.SimulationStatus == "" {
		post.SimulationStatus = classroom.StatusPending
	}
	s.Posts = prepend(s.Posts, post)
	if !post.IsAssignment {
		return s
	}

	s.SubjectSubTab = SubTabClasswork
	id := a.NotificationID
	if id == "" {
		id = "n_" + post.ID
	}
	link := s.ActiveTab
	if post.SubjectID != "" {
		link = SubjectTab(post.SubjectID)
	}
	s.Notifications = prepend(s.Notifications, classroom.Notification{
		ID:          id,
		Type:        classroom.NotificationAssignment,
		Title:       assignmentNotificationTitle,
		Description: fmt.Sprintf("%sが「%s」を投稿しました。", post.Author.Name, post.Title),
		Timestamp:   justNow,
		Link:        link,
	})
	return s
}

func addGroup(s State, a AddGroup) State {
	g := a.Group
	if strings.TrimSpace(g.Name) == "" || len(g.Members) == 0 {
		return s
	}

	groups := make([]classroom.ChatGroup, len(s.Groups), len(s.Groups)+1)
	copy(groups, s.Groups)
	s.Groups = append(groups, g)

	id := a.NotificationID
	if id == "" {
		id = "n_g_" + g.ID
	}
	link := s.ActiveTab
	if g.SubjectID != "" {
		link = SubjectTab(g.SubjectID)
	}
	s.Notifications = prepend(s.Notifications, classroom.Notification{
		ID:          id,
		Type:        classroom.NotificationGroup,
		Title:       groupNotificationTitle,
		Description: fmt.Sprintf("新しい班「%s」に配属されました。", g.Name),
		Timestamp:   justNow,
		Link:        link,
	})
	return s
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

// updatePost 只有 fn 报告目标帖子有变化时才复制
func updatePost(posts []classroom.Post, id string, fn func(*classroom.Post) bool) []classroom.Post {
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		p := posts[i]
		if !fn(&p) {
			return posts
		}
		out := make([]classroom.Post, len(posts))
		copy(out, posts)
		out[i] = p
		return out
	}
	return posts
}

func appendComment(comments []classroom.Comment, parentID string, c classroom.Comment) ([]classroom.Comment, bool) {
	if parentID == "" {
		out := make([]classroom.Comment, len(comments), len(comments)+1)
		copy(out, comments)
		return append(out, c), true
	}
	for i := range comments {
		if comments[i].ID != parentID {
			continue
		}
		parent := comments[i]
		replies := make([]classroom.Comment, len(parent.Replies), len(parent.Replies)+1)
		copy(replies, parent.Replies)
		// 回复只保留一层
		c.Replies = nil
		parent.Replies = append(replies, c)

		out := make([]classroom.Comment, len(comments))
		copy(out, comments)
		out[i] = parent
		return out, true
	}
	return comments, false
}

func markRead(list []classroom.Notification, match func(classroom.Notification) bool) []classroom.Notification {
	var out []classroom.Notification
	for i, n := range list {
		if n.IsRead || !match(n) {
			continue
		}
		if out == nil {
			out = make([]classroom.Notification, len(list))
			copy(out, list)
		}
		out[i].IsRead = true
	}
	if out == nil {
		return list
	}
	return out
}

func appendMessage(msgs []classroom.Message, m classroom.Message) []classroom.Message {
	out := make([]classroom.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}

// withConversation 返回替换了 peerID 会话的副本
func withConversation(h classroom.ChatHistories, peerID string, msgs []classroom.Message) classroom.ChatHistories {
	out := make(classroom.ChatHistories, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[peerID] = msgs
	return out
}

func openConversation(s State, a OpenConversation) State {
	msgs := s.ChatHistories[a.PeerID]
	var out []classroom.Message
	for i, m := range msgs {
		if m.IsRead || m.SenderID == a.ViewerID {
			continue
		}
		if out == nil {
			out = make([]classroom.Message, len(msgs))
			copy(out, msgs)
		}
		out[i].IsRead = true
	}
	if out == nil {
		return s
	}
	s.ChatHistories = withConversation(s.ChatHistories, a.PeerID, out)
	return s
}

func toggleReaction(s State, a ToggleMessageReaction) State {
	msgs := s.ChatHistories[a.PeerID]
	for i := range msgs {
		if msgs[i].ID != a.MessageID {
			continue
		}
		out := make([]classroom.Message, len(msgs))
		copy(out, msgs)
		out[i].Reactions = toggledReactions(msgs[i].Reactions, a.Type, a.UserID)
		s.ChatHistories = withConversation(s.ChatHistories, a.PeerID, out)
		return s
	}
	return s
}

// toggledReactions 切换 userID 在 t 类型反应中的状态, 没有用户的反应被移除
func toggledReactions(reactions []classroom.MessageReaction, t, userID string) []classroom.MessageReaction {
	out := make([]classroom.MessageReaction, 0, len(reactions)+1)
	found := false
	for _, r := range reactions {
		if r.Type != t {
			out = append(out, r)
			continue
		}
		found = true
		users := make([]string, 0, len(r.Users)+1)
		removed := false
		for _, u := range r.Users {
			if u == userID {
				removed = true
				continue
			}
			users = append(users, u)
		}
		if !removed {
			users = append(users, userID)
		}
		if len(users) == 0 {
			continue
		}
		out = append(out, classroom.MessageReaction{Type: r.Type, Count: len(users), Users: users})
	}
	if !found {
		out = append(out, classroom.MessageReaction{Type: t, Count: 1, Users: []string{userID}})
	}
	return out
}
