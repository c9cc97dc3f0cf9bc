package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Instance places one copy of the mesh in the world.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// ToGPU converts the instance into its per-instance vertex data.
//
// Returns:
//   - GPUInstance: model matrix translate * rotate, and the rotation as the normal matrix
func (i Instance) ToGPU() GPUInstance {
	rot := i.Rotation.Normalize().Mat4()
	m := mgl32.Translate3D(i.Position[0], i.Position[1], i.Position[2]).Mul4(rot)
	return GPUInstance{
		Model:  m,
		Normal: rot.Mat3(),
	}
}

// GridInstances lays out perRow*perRow instances on the XZ plane, spacing units apart,
// with the row index perRow/2 sitting on the origin. Every instance is rotated 45°
// about its own normalized position; the one at the origin keeps the identity rotation.
//
// Parameters:
//   - perRow: number of instances along each axis
//   - spacing: distance between neighbouring instances
//
// Returns:
//   - []Instance: the instances in row-major order (z outer, x inner)
func GridInstances(perRow int, spacing float32) []Instance {
	if perRow <= 0 {
		return nil
	}
	half := float32(perRow / 2)
	instances := make([]Instance, 0, perRow*perRow)
	for z := range perRow {
		for x := range perRow {
			pos := mgl32.Vec3{spacing * (float32(x) - half), 0, spacing * (float32(z) - half)}
			rot := mgl32.QuatIdent()
			if pos.Len() > 0 {
				rot = mgl32.QuatRotate(mgl32.DegToRad(45), pos.Normalize())
			}
			instances = append(instances, Instance{Position: pos, Rotation: rot})
		}
	}
	return instances
}

// InstancesToGPU converts a slice of instances into GPU instance data.
//
// Parameters:
//   - instances: the instances to convert
//
// Returns:
//   - []GPUInstance: one entry per instance, same order
func InstancesToGPU(instances []Instance) []GPUInstance {
	out := make([]GPUInstance, len(instances))
	for i, inst := range instances {
		out[i] = inst.ToGPU()
	}
	return out
}
