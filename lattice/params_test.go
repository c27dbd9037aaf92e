package lattice

import (
	"errors"
	"testing"
)

func validParams() Params {
	return Params{
		N:             4,
		M:             8,
		NAtom:         6,
		NPhoton:       50,
		CCDResolution: 128,
		LatticeOrigin: [2]int{16, 16},
		Std:           4,
		NBackg:        100,
		LamBackg:      2,
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"zero atoms allowed", func(p *Params) { p.NAtom = 0 }, false},
		{"zero background samples allowed", func(p *Params) { p.NBackg = 0 }, false},
		{"full lattice allowed", func(p *Params) { p.NAtom = 16 }, false},
		{"zero sites", func(p *Params) { p.N = 0 }, true},
		{"negative sites", func(p *Params) { p.N = -1 }, true},
		{"zero pixels per site", func(p *Params) { p.M = 0 }, true},
		{"negative atoms", func(p *Params) { p.NAtom = -1 }, true},
		{"zero photons", func(p *Params) { p.NPhoton = 0 }, true},
		{"zero resolution", func(p *Params) { p.CCDResolution = 0 }, true},
		{"zero variance", func(p *Params) { p.Std = 0 }, true},
		{"negative variance", func(p *Params) { p.Std = -3 }, true},
		{"negative background samples", func(p *Params) { p.NBackg = -1 }, true},
		{"zero dark rate", func(p *Params) { p.LamBackg = 0 }, true},
		{"more atoms than sites", func(p *Params) { p.NAtom = 17 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("Validate() = %v, want ErrInvalidParameter", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams(10, 20, 50, 1000)

	if p.CCDResolution != 1024 {
		t.Errorf("CCDResolution = %d, want 1024", p.CCDResolution)
	}
	if p.LatticeOrigin != [2]int{400, 600} {
		t.Errorf("LatticeOrigin = %v, want [400 600]", p.LatticeOrigin)
	}
	if p.Std != 10 {
		t.Errorf("Std = %v, want 10", p.Std)
	}
	if p.NBackg != 2000 || p.LamBackg != 200 {
		t.Errorf("background = (%d, %v), want (2000, 200)", p.NBackg, p.LamBackg)
	}
	if p.Span() != 200 {
		t.Errorf("Span() = %d, want 200", p.Span())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
