package state

import (
	"classroom_backend/pkg/classroom"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...Option) *Store {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 5, 10, 9, 41, 0, 0, time.Local) }
	base := []Option{
		WithIDGenerator(classroom.NewCounter(100)),
		WithClock(clock),
	}
	return NewStore(append(base, opts...)...)
}

func TestStore_Defaults(t *testing.T) {
	s := setup(t)
	st := s.State()
	assert.Equal(t, "u1", st.ActiveUser.ID)
	assert.Equal(t, TabHome, st.ActiveTab)
	assert.Equal(t, SubTabStream, st.SubjectSubTab)
	assert.Equal(t, classroom.DefaultBundle(), st.Bundle())

	teacher := setup(t, WithInitialUser(classroom.Teacher())).State()
	assert.Equal(t, classroom.DefaultFixtures()["u7"], teacher.Bundle())
}

func TestStore_Subscribe(t *testing.T) {
	s := setup(t)

	var order []string
	s.Subscribe(func(a Action, prev, next State) {
		order = append(order, "first")
		if _, ok := a.(ToggleSidebar); ok {
			assert.False(t, prev.SidebarOpen)
			assert.True(t, next.SidebarOpen)
		}
	})
	unsubscribe := s.Subscribe(func(Action, State, State) {
		order = append(order, "second")
	})

	s.Dispatch(ToggleSidebar{})
	assert.Equal(t, []string{"first", "second"}, order)

	unsubscribe()
	order = nil
	s.Dispatch(SetActiveTab{Tab: TabChat})
	assert.Equal(t, []string{"first"}, order)
	assert.Equal(t, TabChat, s.State().ActiveTab)
}

func TestStore_SwitchUser(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		ok     bool
		want   string
	}{
		{name: "roster user", userID: "u7", ok: true, want: "u7"},
		{name: "unknown user", userID: "u42", ok: false, want: "u1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setup(t)
			var dispatched int
			s.Subscribe(func(Action, State, State) { dispatched++ })

			assert.Equal(t, tc.ok, s.SwitchUser(tc.userID))
			assert.Equal(t, tc.want, s.State().ActiveUser.ID)
			if tc.ok {
				assert.Equal(t, 1, dispatched)
			} else {
				assert.Zero(t, dispatched)
			}
		})
	}

	t.Run("next user wraps", func(t *testing.T) {
		s := setup(t, WithInitialUser(classroom.Teacher()))
		u := s.NextUser()
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "u2", s.NextUser().ID)
	})
}

func TestStore_CreatePost(t *testing.T) {
	t.Run("outside a subject page", func(t *testing.T) {
		s := setup(t)
		post := s.CreatePost(PostDraft{Content: "明日は休講です"})

		assert.Equal(t, "p101", post.ID)
		assert.Equal(t, classroom.DefaultSubjectID, post.SubjectID)
		assert.Equal(t, "u1", post.Author.ID)
		assert.Equal(t, post, s.State().Posts[0])
		assert.Equal(t, SubTabStream, s.State().SubjectSubTab)
	})

	t.Run("assignment on subject page", func(t *testing.T) {
		s := setup(t, WithInitialUser(classroom.Teacher()))
		s.Navigate(SubjectTab("s3"))
		before := len(s.State().Notifications)

		post := s.CreatePost(PostDraft{Title: "Essay", Content: "Write", IsAssignment: true})
		st := s.State()

		assert.Equal(t, "s3", post.SubjectID)
		assert.Equal(t, SubTabClasswork, st.SubjectSubTab)
		require.Len(t, st.Notifications, before+1)
		assert.Equal(t, "n102", st.Notifications[0].ID)
		assert.Equal(t, "subject-s3", st.Notifications[0].Link)
	})
}

func TestStore_Comments(t *testing.T) {
	s := setup(t)
	c := s.AddComment("p1", "", "質問です")
	reply := s.AddComment("p1", c.ID, "どうぞ")

	p1, ok := s.State().FindPost("p1")
	require.True(t, ok)
	require.Len(t, p1.Comments, 1)
	assert.Equal(t, "c101", c.ID)
	assert.Equal(t, []classroom.Comment{reply}, p1.Comments[0].Replies)
	assert.Equal(t, justNow, reply.Timestamp)
}

func TestStore_CreateGroup(t *testing.T) {
	s := setup(t)
	s.Navigate(SubjectTab("s2"))

	_, ok := s.CreateGroup(" ", []string{"u1"})
	assert.False(t, ok)
	_, ok = s.CreateGroup("B班", nil)
	assert.False(t, ok)
	assert.Len(t, s.State().Groups, 1)

	g, ok := s.CreateGroup("B班", []string{"u1", "u4"})
	require.True(t, ok)
	assert.Equal(t, "G101", g.ID)
	assert.Equal(t, "s2", g.SubjectID)

	st := s.State()
	assert.Len(t, st.Groups, 2)
	assert.Equal(t, "n_g_102", st.Notifications[0].ID)
}

func TestStore_SendMessage(t *testing.T) {
	tests := []struct {
		name   string
		peerID string
		group  string
		recv   string
	}{
		{name: "group", peerID: "G1", group: "G1"},
		{name: "direct", peerID: "u4", recv: "u4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setup(t)
			m := s.SendMessage(tc.peerID, "こんにちは", "")

			assert.Equal(t, tc.group, m.GroupID)
			assert.Equal(t, tc.recv, m.ReceiverID)
			assert.Equal(t, "09:41", m.Timestamp)
			assert.True(t, m.IsRead)

			history := s.State().ChatHistories[tc.peerID]
			assert.Equal(t, m, history[len(history)-1])
		})
	}
}

func TestStore_Conversation(t *testing.T) {
	s := setup(t)
	require.Equal(t, 1, s.State().UnreadFrom("u3", "u1"))

	s.OpenConversation("u3")
	assert.Zero(t, s.State().UnreadFrom("u3", "u1"))

	s.ToggleReaction("u3", "dm_u3_1", string(classroom.ReactionThumbsUp))
	r := s.State().ChatHistories["u3"][0].Reactions
	require.Len(t, r, 1)
	assert.Equal(t, []string{"u1"}, r[0].Users)
}

func TestStore_OpenNotification(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		tab    string
		subTab SubjectSubTab
	}{
		{name: "assignment", id: "n1", tab: "subject-s1", subTab: SubTabClasswork},
		{name: "message", id: "n2", tab: TabChat, subTab: SubTabStream},
		{name: "group", id: "n4", tab: "subject-s1", subTab: SubTabStream},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := setup(t)
			var n classroom.Notification
			for _, item := range s.State().Notifications {
				if item.ID == tc.id {
					n = item
				}
			}
			require.NotEmpty(t, n.ID)

			s.OpenNotification(n)
			st := s.State()
			assert.Equal(t, tc.tab, st.ActiveTab)
			assert.Equal(t, tc.subTab, st.SubjectSubTab)
			for _, item := range st.Notifications {
				if item.ID == tc.id {
					assert.True(t, item.IsRead)
				}
			}
		})
	}
}

func TestStore_Statuses(t *testing.T) {
	s := setup(t)
	s.CycleStatus("p2")
	p2, _ := s.State().FindPost("p2")
	assert.Equal(t, classroom.StatusSubmitted, p2.SimulationStatus)

	s.EditPost("p2", "範囲を変更しました")
	p2, _ = s.State().FindPost("p2")
	assert.Equal(t, "範囲を変更しました", p2.Content)

	s.MarkNotificationRead("n2")
	s.MarkAllNotificationsRead()
	assert.Zero(t, s.State().Bundle().UnreadCount())
}
