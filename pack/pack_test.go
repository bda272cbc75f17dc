package pack

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/molsimtools/fftool"
)

func testSystem(triclinic, center bool) *fftool.System {
	m := &fftool.Molecule{Name: "spce", Filename: "water.zmat", Nmol: 100}
	m.Atoms = []*fftool.Atom{
		{Name: "O", Symbol: "O", Pot: fftool.LJ, Par: []float64{3.165, 0.65}},
	}
	var box *fftool.Cell
	if triclinic {
		box = fftool.NewCell(20, 22, 24, 80, 95, 105, "xyz", center)
	} else {
		box = fftool.NewCell(20, 0, 0, 90, 90, 90, "", center)
	}
	s, err := fftool.NewSystem([]*fftool.Molecule{m}, box, fftool.MixGeometric)
	if err != nil {
		panic(err)
	}
	return s
}

func TestSpeciesFile(t *testing.T) {
	m := &fftool.Molecule{Filename: "dir/water.zmat"}
	if got := SpeciesFile(m); got != "dir/water_pack.xyz" {
		t.Errorf("SpeciesFile = %q", got)
	}
}

func TestWriteInputOrthogonal(t *testing.T) {
	var sb strings.Builder
	if err := WriteInput(&sb, testSystem(false, false), "simbox.xyz", 2.5, 1.5); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"tolerance 2.5",
		"output simbox.xyz",
		"structure water_pack.xyz",
		"number 100",
		"inside box 1.5000 1.5000 1.5000 18.5000 18.5000 18.5000",
		"end structure",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteInputCentered(t *testing.T) {
	var sb strings.Builder
	if err := WriteInput(&sb, testSystem(false, true), "simbox.xyz", 2.5, 0.0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "inside box -10.0000 -10.0000 -10.0000 10.0000 10.0000 10.0000") {
		t.Errorf("centered box constraint missing in:\n%s", sb.String())
	}
}

func TestWriteInputTriclinic(t *testing.T) {
	var sb strings.Builder
	if err := WriteInput(&sb, testSystem(true, false), "simbox.xyz", 2.5, 0.0); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if strings.Contains(out, "inside box") {
		t.Error("triclinic cell should use planes, not a box")
	}
	if n := strings.Count(out, "over plane"); n != 3 {
		t.Errorf("%d over-plane constraints, want 3", n)
	}
	if n := strings.Count(out, "below plane"); n != 3 {
		t.Errorf("%d below-plane constraints, want 3", n)
	}
}

const coordText = `2
simbox
O    1.000000   2.000000   3.000000
H    4.000000   5.000000   6.000000
`

func TestReadCoords(t *testing.T) {
	file := filepath.Join(t.TempDir(), "simbox.xyz")
	if err := os.WriteFile(file, []byte(coordText), 0644); err != nil {
		t.Fatal(err)
	}
	title, pos, err := ReadCoords(file)
	if err != nil {
		t.Fatal(err)
	}
	if title != "simbox" {
		t.Errorf("title %q", title)
	}
	if len(pos) != 2 {
		t.Fatalf("%d positions, want 2", len(pos))
	}
	if math.Abs(pos[1].Y-5.0) > 1e-12 {
		t.Errorf("position %v", pos[1])
	}
}

func TestReadCoordsGzip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "simbox.xyz.gz")
	f, err := os.Create(file)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(coordText)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	title, pos, err := ReadCoords(file)
	if err != nil {
		t.Fatal(err)
	}
	if title != "simbox" || len(pos) != 2 {
		t.Errorf("title %q, %d positions", title, len(pos))
	}
}

func TestReadCoordsTruncated(t *testing.T) {
	file := filepath.Join(t.TempDir(), "short.xyz")
	if err := os.WriteFile(file, []byte("5\nshort\nO 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadCoords(file); err == nil {
		t.Error("no error for truncated file")
	}
}
