package assistant

import (
	"strings"
	"sync"
	"testing"

	"tedtam-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	list []customer.Customer
}

func (s *staticSource) Snapshot() []customer.Customer {
	return s.list
}

func TestReplyCustomerKeyword(t *testing.T) {
	src := &staticSource{list: []customer.Customer{
		{UID: "1", Name: "สมชาย ใจดี", Branch: "กรุงเทพ", Principle: 150000,
			WorkStatus: customer.WorkStatusFieldVisit, Resus: customer.ResusCured},
		{UID: "2", Name: "คนที่สอง"},
	}}
	r := NewResponder(src)

	got := r.Reply("ขอดูข้อมูลลูกค้าหน่อย")

	require.NotNil(t, got.Customer)
	assert.Equal(t, "สมชาย ใจดี", got.Customer.Name, "always cites the first case in the snapshot")
	assert.Contains(t, got.Content, "สมชาย ใจดี")
	assert.Contains(t, got.Content, "กรุงเทพ")
}

func TestReplyCustomerKeywordEnglish(t *testing.T) {
	src := &staticSource{list: []customer.Customer{{UID: "1", Name: "สมชาย"}}}
	r := NewResponder(src)

	got := r.Reply("show me the CUSTOMER")
	require.NotNil(t, got.Customer)
}

func TestReplyCustomerKeywordEmptySnapshot(t *testing.T) {
	r := NewResponder(&staticSource{})

	got := r.Reply("ลูกค้า")

	assert.Nil(t, got.Customer)
	assert.Contains(t, got.Content, "ยังไม่มีข้อมูลลูกค้า")
}

func TestReplyPerformanceKeyword(t *testing.T) {
	src := &staticSource{list: []customer.Customer{
		{UID: "1", WorkStatus: customer.WorkStatusClosed},
		{UID: "2", WorkStatus: customer.WorkStatusFieldVisit},
	}}
	r := NewResponder(src)

	got := r.Reply("ผลงานเป็นยังไงบ้าง")

	assert.Contains(t, got.Content, "2 ราย", "reports the total case count")
	assert.Contains(t, got.Content, "50.0%")
}

func TestReplyStrategyKeyword(t *testing.T) {
	r := NewResponder(&staticSource{})

	got := r.Reply("ขอคำแนะนำหน่อย")
	assert.Contains(t, got.Content, "กลยุทธ์")
}

func TestReplyFallbackRotates(t *testing.T) {
	r := NewResponder(&staticSource{})

	seen := make([]string, 0, len(fallbacks)+1)
	for i := 0; i <= len(fallbacks); i++ {
		seen = append(seen, r.Reply("สวัสดี").Content)
	}

	// Consecutive fallbacks differ, and the rotation wraps around.
	assert.NotEqual(t, seen[0], seen[1])
	assert.Equal(t, seen[0], seen[len(fallbacks)])
}

func TestReplyConcurrentSmallTalk(t *testing.T) {
	r := NewResponder(&staticSource{})

	// The one responder instance serves every request; hammer the fallback
	// rotation from many goroutines.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got := r.Reply("สวัสดี")
				assert.NotEmpty(t, got.Content)
			}
		}()
	}
	wg.Wait()
}

func TestReplyFirstRuleWins(t *testing.T) {
	src := &staticSource{list: []customer.Customer{{UID: "1", Name: "สมชาย"}}}
	r := NewResponder(src)

	// Mentions both a customer and performance; the customer rule is first.
	got := r.Reply("ลูกค้า กับ ผลงาน")
	require.NotNil(t, got.Customer)
	assert.True(t, strings.Contains(got.Content, "สมชาย"))
}
