// Package inputmap translates device-specific input codes into the
// four training channels. Clients may submit raw key names, MIDI note
// numbers or controller button indices; everything downstream of this
// package only ever sees a channel.
package inputmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yalex-kim/timing-trainer/internal/engine"
)

var keyboardMap = map[string]engine.Channel{
	"a": engine.LeftHand,
	"q": engine.LeftHand,
	"d": engine.RightHand,
	"e": engine.RightHand,
	"z": engine.LeftFoot,
	"x": engine.LeftFoot,
	"c": engine.RightFoot,
	"v": engine.RightFoot,
}

// MIDI drum-pad notes, one per limb.
var midiMap = map[int]engine.Channel{
	60: engine.LeftHand,
	62: engine.RightHand,
	64: engine.LeftFoot,
	65: engine.RightFoot,
}

// HID and gamepad buttons share the same 0-3 layout.
var buttonMap = map[int]engine.Channel{
	0: engine.LeftHand,
	1: engine.RightHand,
	2: engine.LeftFoot,
	3: engine.RightFoot,
}

// FromKeyboard maps a key name to its channel. Matching is
// case-insensitive.
func FromKeyboard(key string) (engine.Channel, bool) {
	ch, ok := keyboardMap[strings.ToLower(key)]
	return ch, ok
}

// FromMIDINote maps a MIDI note number to its channel.
func FromMIDINote(note int) (engine.Channel, bool) {
	ch, ok := midiMap[note]
	return ch, ok
}

// FromButton maps a HID or gamepad button index to its channel.
func FromButton(button int) (engine.Channel, bool) {
	ch, ok := buttonMap[button]
	return ch, ok
}

// Resolve maps a raw device code to a channel for the given source.
// Touch events carry the channel name itself as the code.
func Resolve(source engine.Source, code string) (engine.Channel, error) {
	switch source {
	case engine.SourceKeyboard:
		if ch, ok := FromKeyboard(code); ok {
			return ch, nil
		}
	case engine.SourceMIDI:
		note, err := strconv.Atoi(code)
		if err != nil {
			return "", fmt.Errorf("invalid midi note %q", code)
		}
		if ch, ok := FromMIDINote(note); ok {
			return ch, nil
		}
	case engine.SourceHID, engine.SourceGamepad:
		button, err := strconv.Atoi(code)
		if err != nil {
			return "", fmt.Errorf("invalid button index %q", code)
		}
		if ch, ok := FromButton(button); ok {
			return ch, nil
		}
	case engine.SourceTouch:
		ch := engine.Channel(code)
		if ch.Valid() {
			return ch, nil
		}
	default:
		return "", fmt.Errorf("unknown input source %q", source)
	}
	return "", fmt.Errorf("unmapped %s code %q", source, code)
}
