package domain

import (
	"reflect"
	"testing"
)

func TestOccurrences_FirstMatchOrderAndRepetition(t *testing.T) {
	o := NewOccurrences()
	o.Add("beta", "b.css", 1)
	o.Add("alpha", "a.js", 3)
	o.Add("beta", "c.html", 1)
	o.Add("gamma", "a.js", 0)

	if got, want := o.Terms(), []string{"beta", "alpha"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Terms 顺序不符合预期：got=%v want=%v", got, want)
	}
	if got, want := o.Paths("alpha"), []string{"a.js", "a.js", "a.js"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("同文件多次命中应重复记录：got=%v want=%v", got, want)
	}
	if o.Count("beta") != 2 {
		t.Fatalf("期望 beta=2，实际=%d", o.Count("beta"))
	}
	if o.Has("gamma") || o.Len() != 2 {
		t.Fatalf("n=0 不应创建桶：has=%v len=%d", o.Has("gamma"), o.Len())
	}
}

func TestOccurrences_PathsIsCopy(t *testing.T) {
	o := NewOccurrences()
	o.Add("x", "x.js", 1)

	p := o.Paths("x")
	p[0] = "mutated"
	if o.Paths("x")[0] != "x.js" {
		t.Fatalf("Paths 应返回副本")
	}
}
