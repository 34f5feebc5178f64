// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termscreen

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/maruel/ansi256"
)

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out, &Opts{W: 4, H: 2})
	f := canvas.NewFrame(d.Bounds())
	f.SetBit(1, 0, canvas.On)
	if err := d.Draw(d.Bounds(), f, image.Point{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	on := ansi256.Default.Block(color.NRGBA{255, 255, 255, 255})
	off := ansi256.Default.Block(color.NRGBA{A: 255})
	if expected := "\r\033[0m" + off + on + off + off + "\033[0m"; lines[0] != expected {
		t.Errorf("line 0 = %q\nexpected %q", lines[0], expected)
	}
	if strings.Count(lines[1], off) != 4 {
		t.Errorf("line 1 = %q", lines[1])
	}

	// The next frame overwrites the previous one.
	out.Reset()
	if _, err := d.Write(f.Pix); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2A") {
		t.Errorf("missing cursor up: %q", out.String())
	}
	if _, err := d.Write([]byte{1}); err == nil {
		t.Error("expected an error for a short buffer")
	}
}

func TestHalt(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out, &Opts{W: 8, H: 8})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\n\033[0m" {
		t.Errorf("got %q", out.String())
	}
	if s := d.String(); len(s) == 0 {
		t.Error("invalid String() result")
	}
}

func TestDrawOffscreen(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out, &Opts{W: 4, H: 2})
	src := canvas.NewFrame(image.Rect(0, 0, 4, 2))
	src.SetBit(1, 0, canvas.On)
	// The left column of r is off screen, so src (1, 0) lands on (0, 0).
	if err := d.Draw(image.Rect(-1, 0, 3, 2), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !d.frame.BitAt(0, 0) || d.frame.BitAt(1, 0) {
		t.Errorf("source drawn at the wrong offset: %#v", d.frame.Pix)
	}
}

func TestNilOpts(t *testing.T) {
	var out bytes.Buffer
	d := NewWriter(&out, nil)
	if d.Bounds() != image.Rect(0, 0, 128, 32) {
		t.Errorf("Bounds()=%v", d.Bounds())
	}
	if err := d.Draw(d.Bounds(), image.White, image.Point{}); err != nil {
		t.Fatal(err)
	}
	on := ansi256.Default.Block(color.NRGBA{255, 255, 255, 255})
	if n := strings.Count(out.String(), on); n != 128*32 {
		t.Errorf("%d lit pixels", n)
	}
}
