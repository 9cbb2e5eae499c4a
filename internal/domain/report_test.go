package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestRunReport_Finalize_SummaryAndUTC(t *testing.T) {
	r := RunReport{
		Root:          "/abs/root",
		StartedAt:     time.Date(2026, 2, 9, 10, 0, 0, 0, time.FixedZone("X", 9*3600)),
		FinishedAt:    time.Date(2026, 2, 9, 10, 0, 1, 0, time.FixedZone("X", 9*3600)),
		FilesExamined: 3,
		TermCount:     4,
		Counts:        []TermCount{{Term: "a", Count: 1}, {Term: "b", Count: 2}},
		NotFound:      []string{"c", "d"},
		Unique:        []UniqueTerm{{Term: "a", File: "/abs/root/x.js"}},
		Skipped:       []SkippedFile{{Path: "/abs/root/bin.js", Reason: SkipReasonDecode}},
	}

	r.Finalize()

	want := ReportSummary{FilesExamined: 3, FilesSkipped: 1, Terms: 4, Hit: 2, NotFound: 2, Unique: 1}
	if r.Summary != want {
		t.Fatalf("summary 统计不正确：got=%+v want=%+v", r.Summary, want)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	if !bytes.Contains(b, []byte(`"started_at":"2026-02-09T01:00:00Z"`)) {
		t.Fatalf("started_at 不是 UTC RFC3339：%s", string(b))
	}
}

func TestRunReport_Finalize_EmptyListsAreArrays(t *testing.T) {
	var r RunReport
	r.Finalize()

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	for _, key := range []string{`"counts":[]`, `"not_found":[]`, `"unique":[]`, `"skipped":[]`} {
		if !bytes.Contains(b, []byte(key)) {
			t.Fatalf("期望包含 %s：%s", key, string(b))
		}
	}
}
