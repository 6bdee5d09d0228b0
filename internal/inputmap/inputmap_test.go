package inputmap

import (
	"testing"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

func TestFromKeyboard(t *testing.T) {
	cases := []struct {
		key  string
		want engine.Channel
	}{
		{"a", engine.LeftHand},
		{"Q", engine.LeftHand},
		{"d", engine.RightHand},
		{"E", engine.RightHand},
		{"z", engine.LeftFoot},
		{"X", engine.LeftFoot},
		{"c", engine.RightFoot},
		{"V", engine.RightFoot},
	}
	for _, tc := range cases {
		ch, ok := FromKeyboard(tc.key)
		if !ok || ch != tc.want {
			t.Errorf("key %q: expected %s, got %s ok=%v", tc.key, tc.want, ch, ok)
		}
	}
	if _, ok := FromKeyboard("p"); ok {
		t.Error("unmapped key should not resolve")
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		source engine.Source
		code   string
		want   engine.Channel
	}{
		{engine.SourceKeyboard, "a", engine.LeftHand},
		{engine.SourceMIDI, "62", engine.RightHand},
		{engine.SourceHID, "2", engine.LeftFoot},
		{engine.SourceGamepad, "3", engine.RightFoot},
		{engine.SourceTouch, "left-hand", engine.LeftHand},
	}
	for _, tc := range cases {
		ch, err := Resolve(tc.source, tc.code)
		if err != nil || ch != tc.want {
			t.Errorf("%s/%q: expected %s, got %s err=%v", tc.source, tc.code, tc.want, ch, err)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		source engine.Source
		code   string
	}{
		{engine.SourceKeyboard, "m"},
		{engine.SourceMIDI, "not-a-note"},
		{engine.SourceMIDI, "13"},
		{engine.SourceHID, "7"},
		{engine.SourceTouch, "left-elbow"},
		{engine.Source("telepathy"), "1"},
	}
	for _, tc := range cases {
		if _, err := Resolve(tc.source, tc.code); err == nil {
			t.Errorf("%s/%q: expected error", tc.source, tc.code)
		}
	}
}
