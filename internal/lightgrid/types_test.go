package lightgrid

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestClusterRecordPut(t *testing.T) {
	r := ClusterRecord{PointCount: 1, SpotCount: 2, ProjectorCount: 3, DecalCount: 4, Offset: 99}
	buf := make([]byte, ClusterRecordSize)

	r.Put(buf)

	for i, want := range []uint32{1, 2, 3, 4, 99} {
		if got := binary.LittleEndian.Uint32(buf[4*i:]); got != want {
			t.Errorf("Field %d: expected %d, got %d", i, want, got)
		}
	}
	if r.Total() != 10 {
		t.Errorf("Expected total 10, got %d", r.Total())
	}
	if DecodeClusterRecords(buf)[0] != r {
		t.Error("Decoded record differs")
	}
}

func TestGPULightLayout(t *testing.T) {
	l := GPULight{
		Position:     [3]float32{1, 2, 3},
		Type:         uint32(LightSpot),
		Range:        7,
		ShadowRect:   [4]float32{0.25, 0.5, 0.125, 0.125},
		CosOuter:     0.5,
		CastsShadows: 1,
	}

	buf := l.AppendTo(nil)

	if len(buf) != GPULightSize {
		t.Fatalf("Expected %d bytes, got %d", GPULightSize, len(buf))
	}
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if f(8) != 3 || f(44) != 7 || f(56) != 0.125 || f(68) != 0.5 {
		t.Error("Float fields at wrong offsets")
	}
	if binary.LittleEndian.Uint32(buf[12:]) != uint32(LightSpot) || binary.LittleEndian.Uint32(buf[72:]) != 1 {
		t.Error("Integer fields at wrong offsets")
	}
}

func TestShadowAtlasUVRect(t *testing.T) {
	atlas := ShadowAtlas{Width: 4096, Height: 2048}

	got := atlas.UVRect(1024, 512, 512, 512)
	want := [4]float32{0.25, 0.25, 0.125, 0.25}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if (ShadowAtlas{}).UVRect(1, 1, 1, 1) != ([4]float32{}) {
		t.Error("Empty atlas should give a zero rect")
	}
}

func TestLightTypeString(t *testing.T) {
	if LightPoint.String() != "point" || LightDecal.String() != "decal" || LightType(42).String() != "unknown" {
		t.Error("Unexpected light type names")
	}
}
