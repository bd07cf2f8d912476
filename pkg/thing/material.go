package thing

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Material annotates a Thing with physical density and a render color.
// It carries no geometry; mass and inertia exports multiply the voxel
// volume by Density.
type Material struct {
	Name    string
	Density float64 // kg per cubic unit of the implicit length unit
	Color   Color
}

// Preset materials. Aether denotes a massless, invisible material used
// for pure assemblies and construction-only Things.
var (
	Aether = Material{Name: "Aether", Density: 0, Color: Color{0, 0, 0, 0}}
	Steel  = Material{Name: "Steel", Density: 7800, Color: Color{0.27, 0.51, 0.71, 1}}
	Rubber = Material{Name: "Rubber", Density: 800, Color: Color{0.87, 0.72, 0.53, 1}}
	Brass  = Material{Name: "Brass", Density: 8500, Color: Color{0.80, 0.25, 0.10, 1}}
	PETG   = Material{Name: "PETG", Density: 1230, Color: Color{0.90, 0.90, 0.98, 1}}
	PCB    = Material{Name: "PCB", Density: 1000, Color: Color{0.00, 0.55, 0.00, 1}}
)
