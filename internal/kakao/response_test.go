package kakao

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSimpleTextResponse_JSONShape(t *testing.T) {
	resp := NewSimpleTextResponse("오늘 급식입니다",
		NewQuickReply("도움말", ""),
		NewQuickReply("내일 급식", "내일 급식 알려줘"),
	)

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["version"] != "2.0" {
		t.Errorf("version = %v, want 2.0", decoded["version"])
	}

	tmpl := decoded["template"].(map[string]any)
	outputs := tmpl["outputs"].([]any)
	if len(outputs) != 1 {
		t.Fatalf("outputs len = %d, want 1", len(outputs))
	}
	st := outputs[0].(map[string]any)["simpleText"].(map[string]any)
	if st["text"] != "오늘 급식입니다" {
		t.Errorf("simpleText.text = %v", st["text"])
	}

	qrs := tmpl["quickReplies"].([]any)
	if len(qrs) != 2 {
		t.Fatalf("quickReplies len = %d, want 2", len(qrs))
	}
	first := qrs[0].(map[string]any)
	if first["label"] != "도움말" || first["messageText"] != "도움말" || first["action"] != "message" {
		t.Errorf("quick reply = %v", first)
	}
}

func TestNewQuickReply_EmptyMessageTextUsesLabel(t *testing.T) {
	qr := NewQuickReply("오늘 급식", "")
	if qr.MessageText != "오늘 급식" {
		t.Errorf("MessageText = %q, want label fallback", qr.MessageText)
	}
}

func TestNewCarouselResponse_SingleCardCollapses(t *testing.T) {
	resp := NewCarouselResponse([]Card{{Title: "6월 10일", Description: "점심"}})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "carousel") {
		t.Errorf("single card should not produce carousel: %s", body)
	}
	if !strings.Contains(body, "textCard") {
		t.Errorf("single card should collapse to textCard: %s", body)
	}
}

func TestNewCarouselResponse_MultipleCards(t *testing.T) {
	resp := NewCarouselResponse([]Card{
		{Title: "6월 10일", Description: "점심"},
		{Title: "6월 11일", Description: "점심"},
	})

	out := resp.Template.Outputs[0]
	if out.Carousel == nil {
		t.Fatal("expected carousel output")
	}
	if out.Carousel.Type != "textCard" {
		t.Errorf("carousel type = %q", out.Carousel.Type)
	}
	if len(out.Carousel.Items) != 2 {
		t.Errorf("carousel items = %d, want 2", len(out.Carousel.Items))
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("조회 중 오류가 발생했습니다.")

	if resp.Version != ResponseVersion {
		t.Errorf("version = %q", resp.Version)
	}
	st := resp.Template.Outputs[0].SimpleText
	if st == nil || st.Text != "조회 중 오류가 발생했습니다." {
		t.Errorf("simpleText = %+v", st)
	}
	if len(resp.Template.QuickReplies) == 0 {
		t.Error("error response should carry quick replies")
	}
}
