// Package queue 提供无限补充的资源队列
package queue

import (
	"math/rand"

	"github.com/decker502/tinyspace/pkg/types"
)

// DefaultMultiplicity 每批补充中每种资源的数量
const DefaultMultiplicity = 5

// ResourceQueue 半随机的资源队列
//
// 每批补充包含每种资源各 multiplicity 个，打乱后追加到队尾，
// 因此任意一批内资源分布是均衡的。
type ResourceQueue struct {
	resources    []types.ThingKind
	multiplicity int
	rng          *rand.Rand

	queue     []types.ThingKind
	lastTaken types.ThingKind
	hasTaken  bool
}

// New 创建资源队列并立即补充一批
//
// 参数：
//   - resources: 参与补充的资源类型（注册顺序）
//   - multiplicity: 每批中每种资源的数量，<=0 时使用 DefaultMultiplicity
//   - seed: 随机种子，相同种子产生相同序列
func New(resources []types.ThingKind, multiplicity int, seed int64) *ResourceQueue {
	if len(resources) == 0 {
		panic("queue: at least one resource kind is required")
	}
	if multiplicity <= 0 {
		multiplicity = DefaultMultiplicity
	}
	q := &ResourceQueue{
		resources:    append([]types.ThingKind(nil), resources...),
		multiplicity: multiplicity,
		rng:          rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
	}
	q.Refill()
	return q
}

// BatchSize 单次补充的元素数量
func (q *ResourceQueue) BatchSize() int {
	return q.multiplicity * len(q.resources)
}

// Refill 追加一批打乱后的均衡资源
func (q *ResourceQueue) Refill() {
	pool := make([]types.ThingKind, 0, q.BatchSize())
	for _, r := range q.resources {
		for i := 0; i < q.multiplicity; i++ {
			pool = append(pool, r)
		}
	}
	q.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	q.queue = append(q.queue, pool...)
}

// Len 当前已生成但尚未取走的元素数
func (q *ResourceQueue) Len() int {
	return len(q.queue)
}

// PeekN 查看前 n 个元素，不移除；不足时自动补充
func (q *ResourceQueue) PeekN(n int) []types.ThingKind {
	if n <= 0 {
		return nil
	}
	for len(q.queue) < n {
		q.Refill()
	}
	return append([]types.ThingKind(nil), q.queue[:n]...)
}

// Peek 查看下一个元素
func (q *ResourceQueue) Peek() types.ThingKind {
	return q.PeekN(1)[0]
}

// TakeN 取走前 n 个元素，并记录最后取走的那个
func (q *ResourceQueue) TakeN(n int) []types.ThingKind {
	taken := q.PeekN(n)
	if len(taken) == 0 {
		return taken
	}
	q.lastTaken = taken[len(taken)-1]
	q.hasTaken = true
	q.queue = q.queue[n:]
	return taken
}

// Take 取走下一个元素
func (q *ResourceQueue) Take() types.ThingKind {
	return q.TakeN(1)[0]
}

// LastTaken 最近一次取走的最后一个元素（供界面动画使用）
// 还没有取过时返回 false
func (q *ResourceQueue) LastTaken() (types.ThingKind, bool) {
	return q.lastTaken, q.hasTaken
}
