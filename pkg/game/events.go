package game

import (
	"github.com/decker502/tinyspace/pkg/grid"
	"github.com/decker502/tinyspace/pkg/types"
)

// EventKind 事件类型
type EventKind int

const (
	// EventPlaceResource 资源放置成功
	EventPlaceResource EventKind = iota + 1
	// EventPlaceBuilding 建筑建造成功
	EventPlaceBuilding
)

func (k EventKind) String() string {
	switch k {
	case EventPlaceResource:
		return "PlaceResource"
	case EventPlaceBuilding:
		return "PlaceBuilding"
	default:
		return "Unknown"
	}
}

// Event 一次成功的放置
// 只用于界面动画，游戏逻辑不依赖事件
type Event struct {
	Kind  EventKind
	Thing types.ThingKind // 放置的物体
	At    grid.Point      // 放置的格子
	Tick  uint64          // 发生时的帧计数
}

// Listener 事件回调
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe 注册事件回调
//
// 回调按注册顺序同步调用，调用时会话锁已释放，回调中可以读取会话状态。
// 不会重放注册之前的事件。
//
// 返回：取消注册的函数（可重复调用）
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publish 在锁外调用，按注册顺序分发
func (s *Session) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	s.mu.Lock()
	subs := append([]subscription(nil), s.subscribers...)
	s.mu.Unlock()

	for _, ev := range events {
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}
