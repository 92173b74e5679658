package atres

import "testing"

type fakeTexture struct {
	id     int
	loaded bool
}

func (f *fakeTexture) Loaded() bool { return f.loaded }
func (f *fakeTexture) Width() int   { return 64 }
func (f *fakeTexture) Height() int  { return 64 }

func TestBuildQuadUVMapping(t *testing.T) {
	src := Rect{X: 16, Y: 0, Width: 16, Height: 16}
	verts := buildQuad(10, 20, 16, 16, src, 64, 64, ColorWhite)
	if len(verts) != 6 {
		t.Fatalf("got %d vertices, want 6 (two triangles)", len(verts))
	}
	tl := verts[0]
	if tl.X != 10 || tl.Y != 20 {
		t.Errorf("top-left = (%v,%v), want (10,20)", tl.X, tl.Y)
	}
	if tl.U != 0.25 || tl.V != 0 {
		t.Errorf("top-left UV = (%v,%v), want (0.25,0)", tl.U, tl.V)
	}
	br := verts[4]
	if br.X != 26 || br.Y != 36 {
		t.Errorf("bottom-right = (%v,%v), want (26,36)", br.X, br.Y)
	}
}

func TestPlainQuadHasNoUV(t *testing.T) {
	verts := plainQuad(0, 0, 10, 2, ColorWhite)
	if len(verts) != 6 {
		t.Fatalf("got %d vertices, want 6", len(verts))
	}
	for _, v := range verts {
		if v.U != 0 || v.V != 0 {
			t.Errorf("plain quad vertex has nonzero UV: %+v", v)
		}
	}
}

func TestBatchBuilderFlushesOnKeyChange(t *testing.T) {
	var out []RenderSequence
	b := &batchBuilder{dst: &out}
	texA := &fakeTexture{id: 1, loaded: true}
	texB := &fakeTexture{id: 2, loaded: true}

	b.ensure(texA, ColorWhite, true)
	b.add(Vertex{X: 1})
	b.ensure(texA, ColorWhite, true) // same key: no flush
	b.add(Vertex{X: 2})
	b.ensure(texB, ColorWhite, true) // different texture: flush
	b.add(Vertex{X: 3})
	b.flush()

	if len(out) != 2 {
		t.Fatalf("got %d sequences, want 2: %+v", len(out), out)
	}
	if len(out[0].Vertices) != 2 {
		t.Errorf("first sequence has %d vertices, want 2 (merged before the key change)", len(out[0].Vertices))
	}
	if out[0].Texture != Texture(texA) {
		t.Errorf("first sequence texture = %v, want texA", out[0].Texture)
	}
	if out[1].Texture != Texture(texB) {
		t.Errorf("second sequence texture = %v, want texB", out[1].Texture)
	}
}

func TestBatchBuilderFlushDropsEmptyOpen(t *testing.T) {
	var out []RenderSequence
	b := &batchBuilder{dst: &out}
	b.ensure(&fakeTexture{loaded: true}, ColorWhite, true)
	b.flush() // no vertices added
	if len(out) != 0 {
		t.Errorf("got %d sequences, want 0 for an empty batch", len(out))
	}
}

func TestLiningBuilderFlushesOnColorChange(t *testing.T) {
	var out []RenderLiningSequence
	b := &liningBuilder{dst: &out}
	red := Color{R: 1, A: 1}
	blue := Color{B: 1, A: 1}

	b.ensure(red)
	b.add(Vertex{X: 1})
	b.ensure(blue)
	b.add(Vertex{X: 2})
	b.flush()

	if len(out) != 2 {
		t.Fatalf("got %d sequences, want 2: %+v", len(out), out)
	}
}

func TestOptimizeSequencesMergesMatchingBatches(t *testing.T) {
	tex := &fakeTexture{loaded: true}
	seqs := []RenderSequence{
		{Texture: tex, Color: ColorWhite, MultiplyAlpha: true, Vertices: []Vertex{{X: 1}}},
		{Texture: tex, Color: ColorWhite, MultiplyAlpha: true, Vertices: []Vertex{{X: 2}}},
		{Texture: tex, Color: Color{R: 1, A: 1}, MultiplyAlpha: true, Vertices: []Vertex{{X: 3}}},
	}
	optimizeSequences(&seqs)
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2 (first two merged, third distinct color): %+v", len(seqs), seqs)
	}
	if len(seqs[0].Vertices) != 2 {
		t.Errorf("merged sequence has %d vertices, want 2", len(seqs[0].Vertices))
	}
}

func TestOptimizeSequencesIgnoresAlphaWhenMerging(t *testing.T) {
	tex := &fakeTexture{loaded: true}
	seqs := []RenderSequence{
		{Texture: tex, Color: Color{R: 1, A: 1}, MultiplyAlpha: true, Vertices: []Vertex{{X: 1}}},
		{Texture: tex, Color: Color{R: 1, A: 0.2}, MultiplyAlpha: true, Vertices: []Vertex{{X: 2}}},
	}
	optimizeSequences(&seqs)
	if len(seqs) != 1 {
		t.Fatalf("got %d sequences, want 1 (alpha ignored by hex(true) comparison): %+v", len(seqs), seqs)
	}
}

func TestOptimizeLiningSequencesMergesByColor(t *testing.T) {
	seqs := []RenderLiningSequence{
		{Color: Color{R: 1, A: 1}, Vertices: []Vertex{{X: 1}}},
		{Color: Color{G: 1, A: 1}, Vertices: []Vertex{{X: 2}}},
		{Color: Color{R: 1, A: 1}, Vertices: []Vertex{{X: 3}}},
	}
	optimizeLiningSequences(&seqs)
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2: %+v", len(seqs), seqs)
	}
}

func TestCharacterDefinitionAdvance0(t *testing.T) {
	def := CharacterDefinition{Advance: 10}
	state := tagState{scale: 2}
	if got := def.Advance0(state); got != 20 {
		t.Errorf("Advance0 = %v, want 20", got)
	}
}
