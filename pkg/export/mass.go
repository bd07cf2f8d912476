package export

import (
	"math"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
)

// DefaultMassResolution is the voxel count along the longest bounding
// box axis when MassConfig leaves Resolution unset.
const DefaultMassResolution = 64

// MassConfig controls the voxel estimator.
type MassConfig struct {
	// Resolution is the number of voxels along the longest axis of
	// each node's bounding box. Zero selects DefaultMassResolution.
	// The estimation error scales with the voxel pitch, O(h), so
	// doubling Resolution roughly halves the error at eight times
	// the sampling cost.
	Resolution int
}

// MassProperties is the voxel estimate of an assembly's inertial
// quantities in the world frame. Inertia is taken about the center of
// mass.
type MassProperties struct {
	Volume       float64
	Mass         float64
	CenterOfMass geom.Vec3
	Inertia      geom.Mat3
}

// Mass estimates volume, mass, center of mass and the inertia tensor by
// sampling each node's solid on a regular grid over its world bounding
// box. A voxel counts as material when the signed distance at its
// center is non positive. The result is an approximation whose error
// shrinks linearly with the voxel pitch and converges monotonically as
// MassConfig.Resolution increases. Nodes whose material has zero
// density still contribute volume. Assemblies with no solid material
// anywhere are an error.
func Mass(k kernel.Kernel, a *assembly.Assembly, cfg MassConfig) (MassProperties, error) {
	res := cfg.Resolution
	if res <= 0 {
		res = DefaultMassResolution
	}

	var (
		volume float64
		mass   float64
		moment geom.Vec3  // first mass moment about the world origin
		second [6]float64 // xx yy zz xy xz yz raw second moments
		voxels int
	)

	err := a.Walk(func(n *assembly.Node, world geom.Transform) error {
		result := n.Thing().Result()
		if result == nil {
			return nil
		}
		placed := k.Transform(result, world)
		min, max := placed.BoundingBox()

		longest := 0.0
		for i := 0; i < 3; i++ {
			longest = math.Max(longest, max[i]-min[i])
		}
		if longest <= 0 {
			return exportErr("mass", "degenerate bounding box at "+n.Path(), nil)
		}
		h := longest / float64(res)
		var cells [3]int
		for i := 0; i < 3; i++ {
			cells[i] = int(math.Ceil((max[i] - min[i]) / h))
			if cells[i] < 1 {
				cells[i] = 1
			}
		}

		density := n.Thing().Material().Density
		dV := h * h * h
		for ix := 0; ix < cells[0]; ix++ {
			x := min[0] + (float64(ix)+0.5)*h
			for iy := 0; iy < cells[1]; iy++ {
				y := min[1] + (float64(iy)+0.5)*h
				for iz := 0; iz < cells[2]; iz++ {
					z := min[2] + (float64(iz)+0.5)*h
					if k.SignedDistanceAt(placed, geom.Vec3{X: x, Y: y, Z: z}) > 0 {
						continue
					}
					voxels++
					volume += dV
					dm := density * dV
					mass += dm
					moment = moment.Add(geom.Vec3{X: x, Y: y, Z: z}.Scale(dm))
					second[0] += dm * x * x
					second[1] += dm * y * y
					second[2] += dm * z * z
					second[3] += dm * x * y
					second[4] += dm * x * z
					second[5] += dm * y * z
				}
			}
		}
		return nil
	})
	if err != nil {
		return MassProperties{}, err
	}
	if voxels == 0 {
		return MassProperties{}, exportErr("mass", "no material voxels sampled", nil)
	}

	props := MassProperties{Volume: volume, Mass: mass}
	if mass <= 0 {
		return props, nil
	}
	com := moment.Scale(1 / mass)
	props.CenterOfMass = com

	// inertia about the origin from raw second moments, then shifted
	// to the center of mass
	ixx := second[1] + second[2]
	iyy := second[0] + second[2]
	izz := second[0] + second[1]
	ixy := -second[3]
	ixz := -second[4]
	iyz := -second[5]

	ixx -= mass * (com.Y*com.Y + com.Z*com.Z)
	iyy -= mass * (com.X*com.X + com.Z*com.Z)
	izz -= mass * (com.X*com.X + com.Y*com.Y)
	ixy += mass * com.X * com.Y
	ixz += mass * com.X * com.Z
	iyz += mass * com.Y * com.Z

	props.Inertia = geom.Mat3{
		{ixx, ixy, ixz},
		{ixy, iyy, iyz},
		{ixz, iyz, izz},
	}
	return props, nil
}
