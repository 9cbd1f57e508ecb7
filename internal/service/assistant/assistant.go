// internal/service/assistant/assistant.go
//
// Scripted rule-based chat responder. It matches keywords against the current
// customer snapshot and answers from canned templates; there is no model
// behind it.
package assistant

import (
	"fmt"
	"strings"
	"sync/atomic"

	"tedtam-service/internal/domain/customer"
	"tedtam-service/internal/stats"
)

// SnapshotSource provides the current in-memory customer list.
type SnapshotSource interface {
	Snapshot() []customer.Customer
}

// Reply is one assistant answer, optionally carrying the case it cites.
type Reply struct {
	Content  string             `json:"content"`
	Customer *customer.Customer `json:"customer,omitempty"`
}

type Responder struct {
	source SnapshotSource

	// round-robins the fallback answers so repeated small talk varies.
	// One responder serves all requests, so the counter is atomic.
	fallbackIdx atomic.Int64
}

func NewResponder(source SnapshotSource) *Responder {
	return &Responder{source: source}
}

var fallbacks = []string{
	"ขอบคุณสำหรับคำถามครับ ผมพร้อมช่วยเหลือคุณเสมอ",
	"มีอะไรอื่นที่ผมสามารถช่วยได้บ้างครับ?",
	"ผมเข้าใจครับ มีข้อมูลอื่นที่ต้องการทราบไหม?",
	"ขอบคุณครับ ผมจะช่วยหาข้อมูลให้คุณ",
}

// Reply answers one user message. Matching is keyword-based over the lowered
// input; the first matching rule wins.
func (r *Responder) Reply(message string) Reply {
	input := strings.ToLower(message)
	snapshot := r.source.Snapshot()

	switch {
	case strings.Contains(input, "ลูกค้า") || strings.Contains(input, "customer"):
		if len(snapshot) > 0 {
			c := snapshot[0]
			return Reply{
				Content: fmt.Sprintf(
					"ผมพบข้อมูลลูกค้าที่เกี่ยวข้อง:\n\n📋 %s\n🏢 สาขา: %s\n💰 เงินต้น: ฿%.0f\n📊 สถานะ: %s\n🎯 RESUS: %s\n\nต้องการข้อมูลเพิ่มเติมหรือไม่ครับ?",
					c.Name, c.Branch, c.Principle, c.WorkStatus, c.Resus,
				),
				Customer: &c,
			}
		}
		return Reply{Content: "ยังไม่มีข้อมูลลูกค้าในระบบครับ"}

	case strings.Contains(input, "ผลงาน") || strings.Contains(input, "performance"):
		summary := stats.Dashboard(snapshot)
		return Reply{
			Content: fmt.Sprintf(
				"📊 สรุปผลงานของคุณ\n\n👥 ลูกค้าทั้งหมด: %d ราย\n✅ เคสที่เสร็จสิ้น: %d ราย\n📈 อัตราความสำเร็จ: %.1f%%\n\nผลงานของคุณดีมากครับ! มีอะไรให้ช่วยปรับปรุงอีกไหม?",
				summary.TotalCustomers, summary.CompletedCases, summary.CompletionRate,
			),
		}

	case strings.Contains(input, "แนะนำ") || strings.Contains(input, "กลยุทธ์"):
		return Reply{
			Content: "💡 แนะนำกลยุทธ์การทำงาน\n\n" +
				"1. 🎯 มุ่งเน้นลูกค้าที่มีศักยภาพสูง - เงินต้นมาก ติดต่อได้ง่าย\n" +
				"2. 📞 เพิ่มความถี่ในการติดตาม - โทรทุกสัปดาห์ ส่งข้อความเตือน\n" +
				"3. 🗺️ วางแผนเส้นทาง - จัดกลุ่มลูกค้าตามพื้นที่\n\n" +
				"ต้องการคำแนะนำเฉพาะเจาะจงมากกว่านี้ไหมครับ?",
		}
	}

	idx := r.fallbackIdx.Add(1) - 1
	return Reply{Content: fallbacks[idx%int64(len(fallbacks))]}
}
