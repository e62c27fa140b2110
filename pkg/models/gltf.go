package models

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Stand-in mesh resolution used by SaveScene.
const (
	sphereSegments = 24
	sphereRings    = 12
	quadExtent     = 10
)

// LoadScene reads a glTF or GLB file into a world and the camera it
// describes. Files without a camera get scene.DefaultCamera.
func LoadScene(path string) (*scene.World, scene.CameraSpec, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, scene.CameraSpec{}, fmt.Errorf("open gltf: %w", err)
	}

	l := &sceneLoader{
		doc:    doc,
		world:  scene.New(nil),
		meshes: make(map[int]*Mesh),
		onPath: make(map[int]bool),
	}
	for _, idx := range rootNodes(doc) {
		if err := l.visit(idx, math3d.Identity()); err != nil {
			return nil, scene.CameraSpec{}, err
		}
	}

	if l.world.Light == nil {
		log.Printf("models: %s has no light, every pixel will be black", filepath.Base(path))
	}
	cam := scene.DefaultCamera()
	if l.camera != nil {
		cam = *l.camera
	}
	return l.world, cam, nil
}

type sceneLoader struct {
	doc    *gltf.Document
	world  *scene.World
	camera *scene.CameraSpec
	meshes map[int]*Mesh

	// nodes between the root and the node being visited
	onPath map[int]bool
}

// rootNodes returns the nodes of the default scene, or every node that is
// nobody's child when the file has no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *sceneLoader) visit(idx int, parent math3d.Mat4) error {
	if idx < 0 || idx >= len(l.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	if l.onPath[idx] {
		return fmt.Errorf("node %d: cycle in node hierarchy", idx)
	}
	l.onPath[idx] = true
	defer delete(l.onPath, idx)

	node := l.doc.Nodes[idx]
	world := parent.Mul(localMatrix(node))

	var extras prismExtras
	if _, err := decodeExtras(node.Extras, &extras); err != nil {
		return fmt.Errorf("node %q: %w", node.Name, err)
	}

	if extras.Light != nil {
		if err := l.addLight(node, world, extras.Light); err != nil {
			return err
		}
	}
	if node.Camera != nil {
		if err := l.setCamera(node, world); err != nil {
			return err
		}
	}
	if node.Mesh != nil {
		if err := l.addShape(node, world, extras); err != nil {
			return err
		}
	}

	for _, c := range node.Children {
		if err := l.visit(c, world); err != nil {
			return err
		}
	}
	return nil
}

func (l *sceneLoader) addLight(node *gltf.Node, world math3d.Mat4, ex *lightExtras) error {
	if l.world.Light != nil {
		log.Printf("models: ignoring extra light %q, only one point light is supported", node.Name)
		return nil
	}
	intensity := material.White
	if ex.Intensity != nil {
		intensity = material.Color(*ex.Intensity)
	}
	l.world.Light = scene.NewPointLight(world.MulVec3(math3d.Zero3()), intensity)
	return nil
}

func (l *sceneLoader) setCamera(node *gltf.Node, world math3d.Mat4) error {
	if l.camera != nil {
		return nil
	}
	if *node.Camera < 0 || *node.Camera >= len(l.doc.Cameras) {
		return fmt.Errorf("node %q: camera index %d out of range", node.Name, *node.Camera)
	}
	c := l.doc.Cameras[*node.Camera]
	if c.Perspective == nil {
		log.Printf("models: skipping camera %q, only perspective cameras are supported", c.Name)
		return nil
	}

	// glTF cameras look down -z with +y up, the same frame LookAt builds.
	from := world.MulVec3(math3d.Zero3())
	forward := world.MulVec3Dir(math3d.V3(0, 0, -1)).Normalize()
	up := world.MulVec3Dir(math3d.Up()).Normalize()
	l.camera = &scene.CameraSpec{
		From: from,
		To:   from.Add(forward),
		Up:   up,
		FOV:  c.Perspective.Yfov,
	}
	return nil
}

func (l *sceneLoader) addShape(node *gltf.Node, world math3d.Mat4, ex prismExtras) error {
	mi := *node.Mesh
	if mi < 0 || mi >= len(l.doc.Meshes) {
		return fmt.Errorf("node %q: mesh index %d out of range", node.Name, mi)
	}
	gm := l.doc.Meshes[mi]

	mesh, err := l.mesh(mi)
	if err != nil {
		return fmt.Errorf("mesh %q: %w", gm.Name, err)
	}

	kind, fit := mesh.Fit()
	switch {
	case ex.Shape != "":
		if kind, err = geometry.ParseKind(ex.Shape); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	case strings.Contains(strings.ToLower(gm.Name), "plane"):
		kind = geometry.KindPlane
	}
	if ex.Shape != "" {
		// Shapes tagged by prism were written with a unit stand-in mesh.
		fit = math3d.Identity()
	}

	var s geometry.Shape
	switch kind {
	case geometry.KindPlane:
		s = geometry.NewPlane()
	case geometry.KindTest:
		s = geometry.NewTestShape()
	default:
		s = geometry.NewSphere()
	}
	s.Name = node.Name
	if s.Name == "" {
		s.Name = gm.Name
	}

	m := world.Mul(fit)
	if m.Determinant() == 0 {
		log.Printf("models: node %q has a singular transform, rays will use the identity", s.Name)
	}
	s.SetTransform(m)

	if len(gm.Primitives) > 0 && gm.Primitives[0].Material != nil {
		idx := *gm.Primitives[0].Material
		if idx < 0 || idx >= len(l.doc.Materials) {
			return fmt.Errorf("mesh %q: material index %d out of range", gm.Name, idx)
		}
		if s.Material, err = readMaterial(l.doc.Materials[idx]); err != nil {
			return fmt.Errorf("material %q: %w", l.doc.Materials[idx].Name, err)
		}
	}

	l.world.Add(s)
	return nil
}

// mesh reads and caches the positions of every triangle primitive of a mesh.
func (l *sceneLoader) mesh(idx int) (*Mesh, error) {
	if m, ok := l.meshes[idx]; ok {
		return m, nil
	}

	gm := l.doc.Meshes[idx]
	mesh := NewMesh(gm.Name)
	first := true
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(l.doc.Accessors) {
			return nil, fmt.Errorf("position accessor %d out of range", posIdx)
		}
		acc := l.doc.Accessors[posIdx]

		// Min and max are required on POSITION, but fall back to the data
		// for files that leave them out.
		var lo, hi math3d.Vec3
		if len(acc.Min) == 3 && len(acc.Max) == 3 {
			lo = math3d.V3(acc.Min[0], acc.Min[1], acc.Min[2])
			hi = math3d.V3(acc.Max[0], acc.Max[1], acc.Max[2])
		} else {
			positions, err := readVec3Accessor(l.doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("read positions: %w", err)
			}
			if len(positions) == 0 {
				continue
			}
			mesh.Positions = append(mesh.Positions, positions...)
			tmp := &Mesh{Positions: positions}
			tmp.CalculateBounds()
			lo, hi = tmp.BoundsMin, tmp.BoundsMax
		}

		if first {
			mesh.BoundsMin, mesh.BoundsMax = lo, hi
			first = false
		} else {
			mesh.BoundsMin = mesh.BoundsMin.Min(lo)
			mesh.BoundsMax = mesh.BoundsMax.Max(hi)
		}
	}
	if first {
		return nil, errors.New("no triangle primitive with positions")
	}

	l.meshes[idx] = mesh
	return mesh, nil
}

// localMatrix returns a node's transform. glTF allows either a matrix or
// TRS; a zero field is treated as unset so hand-built documents work too.
func localMatrix(n *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(n.Matrix)
	if m == (math3d.Mat4{}) {
		m = math3d.Identity()
	}

	t := n.Translation
	r := n.Rotation
	if r == ([4]float64{}) {
		r = [4]float64{0, 0, 0, 1}
	}
	s := n.Scale
	if s == ([3]float64{}) {
		s = [3]float64{1, 1, 1}
	}

	trs := math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(math3d.FromQuat(r[0], r[1], r[2], r[3])).
		Mul(math3d.Scale(math3d.V3(s[0], s[1], s[2])))
	return m.Mul(trs)
}

// readMaterial maps PBR factors onto Phong parameters, then applies any
// prism extras on top.
func readMaterial(gm *gltf.Material) (material.Material, error) {
	m := material.Default()

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		alpha := 1.0
		if f := pbr.BaseColorFactor; f != nil {
			m.Color = material.RGB(f[0], f[1], f[2])
			alpha = f[3]
		}
		if pbr.MetallicFactor != nil {
			m.Reflective = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			// Rough surfaces get broad, dim highlights.
			rough := math.Max(*pbr.RoughnessFactor, 0.01)
			m.Shininess = math.Min(2/(rough*rough), 400)
		}
		if gm.AlphaMode == gltf.AlphaBlend && alpha < 1 {
			m.Transparency = 1 - alpha
			m.RefractiveIndex = 1.5
		}
	}

	var ex materialExtras
	if _, err := decodeExtras(gm.Extras, &ex); err != nil {
		return m, err
	}
	if err := ex.apply(&m); err != nil {
		return m, err
	}
	return m, nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		off := i * stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("accessor overruns its buffer at element %d", i)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// accessorBytes returns the accessor's data starting at its first element,
// along with the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, errors.New("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	// gltf.Open resolves embedded, data URI and external buffers into Data.
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, errors.New("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if start > len(bufData) {
		return nil, 0, errors.New("accessor starts past the end of its buffer")
	}
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return bufData[start:], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// SaveScene writes a world and camera as glTF. The extension picks the
// container: .glb for binary, .gltf for JSON with the buffer inlined.
func SaveScene(path string, w *scene.World, cam scene.CameraSpec) error {
	binaryOut := false
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		binaryOut = true
	case ".gltf":
	default:
		return fmt.Errorf("unsupported scene format %q (want .gltf or .glb)", filepath.Ext(path))
	}

	doc, err := buildDocument(w, cam)
	if err != nil {
		return err
	}

	if binaryOut {
		err = gltf.SaveBinary(doc, path)
	} else {
		buf := doc.Buffers[0]
		buf.URI = "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Data)
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}

func buildDocument(w *scene.World, cam scene.CameraSpec) (*gltf.Document, error) {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "prism"},
		Scene: ptr(0),
	}
	root := &gltf.Scene{Name: "prism"}
	doc.Scenes = []*gltf.Scene{root}

	var buf []byte
	sphere := writeMesh(doc, &buf, UnitSphere(sphereSegments, sphereRings))
	quad := writeMesh(doc, &buf, UnitQuad(quadExtent))
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(buf), Data: buf}}

	for i := range w.Objects {
		s := &w.Objects[i]
		stand := sphere
		if s.Kind == geometry.KindPlane {
			stand = quad
		}

		matIdx := len(doc.Materials)
		doc.Materials = append(doc.Materials, writeMaterial(s.Name, s.Material))

		meshIdx := len(doc.Meshes)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: s.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: stand.position},
				Indices:    ptr(stand.indices),
				Material:   ptr(matIdx),
				Mode:       gltf.PrimitiveTriangles,
			}},
		})

		root.Nodes = append(root.Nodes, len(doc.Nodes))
		node := newNode(s.Name)
		node.Mesh = ptr(meshIdx)
		node.Matrix = [16]float64(s.Transform())
		node.Extras = map[string]any{"prism": prismExtras{Shape: s.Kind.String()}}
		doc.Nodes = append(doc.Nodes, node)
	}

	if w.Light != nil {
		p := w.Light.Position
		intensity := jsonColor(w.Light.Intensity)
		root.Nodes = append(root.Nodes, len(doc.Nodes))
		node := newNode("light")
		node.Translation = [3]float64{p.X, p.Y, p.Z}
		node.Extras = map[string]any{"prism": prismExtras{Light: &lightExtras{Intensity: &intensity}}}
		doc.Nodes = append(doc.Nodes, node)
	}

	view, ok := cam.ViewTransform().Inverse()
	if !ok {
		return nil, errors.New("camera view transform is singular")
	}
	doc.Cameras = []*gltf.Camera{{
		Name:        "camera",
		Perspective: &gltf.Perspective{Yfov: cam.FOV, Znear: 0.01},
	}}
	root.Nodes = append(root.Nodes, len(doc.Nodes))
	node := newNode("camera")
	node.Camera = ptr(0)
	node.Matrix = [16]float64(view)
	doc.Nodes = append(doc.Nodes, node)

	return doc, nil
}

type meshAccessors struct {
	position int
	indices  int
}

// writeMesh appends a mesh's vertex and index data to buf and registers
// the buffer views and accessors that describe it.
func writeMesh(doc *gltf.Document, buf *[]byte, m *Mesh) meshAccessors {
	posOffset := len(*buf)
	for _, p := range m.Positions {
		*buf = binary.LittleEndian.AppendUint32(*buf, math.Float32bits(float32(p.X)))
		*buf = binary.LittleEndian.AppendUint32(*buf, math.Float32bits(float32(p.Y)))
		*buf = binary.LittleEndian.AppendUint32(*buf, math.Float32bits(float32(p.Z)))
	}
	posView := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: posOffset,
		ByteLength: len(*buf) - posOffset,
		Target:     gltf.TargetArrayBuffer,
	})

	idxOffset := len(*buf)
	for _, i := range m.Indices {
		*buf = binary.LittleEndian.AppendUint16(*buf, uint16(i))
	}
	idxView := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: idxOffset,
		ByteLength: len(*buf) - idxOffset,
		Target:     gltf.TargetElementArrayBuffer,
	})
	for len(*buf)%4 != 0 {
		*buf = append(*buf, 0)
	}

	out := meshAccessors{position: len(doc.Accessors), indices: len(doc.Accessors) + 1}
	doc.Accessors = append(doc.Accessors,
		&gltf.Accessor{
			BufferView:    ptr(posView),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         len(m.Positions),
			Min:           []float64{m.BoundsMin.X, m.BoundsMin.Y, m.BoundsMin.Z},
			Max:           []float64{m.BoundsMax.X, m.BoundsMax.Y, m.BoundsMax.Z},
		},
		&gltf.Accessor{
			BufferView:    ptr(idxView),
			ComponentType: gltf.ComponentUshort,
			Type:          gltf.AccessorScalar,
			Count:         len(m.Indices),
		},
	)
	return out
}

// writeMaterial emits a PBR approximation for other viewers plus the exact
// Phong parameters as extras.
func writeMaterial(name string, m material.Material) *gltf.Material {
	c := m.Color.Clamped()
	metallic := m.Reflective
	rough := math.Sqrt(2 / math.Max(m.Shininess, 2))
	gm := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{c.R, c.G, c.B, 1 - m.Transparency},
			MetallicFactor:  &metallic,
			RoughnessFactor: &rough,
		},
		Extras: map[string]any{"prism": materialToExtras(m)},
	}
	if m.Transparency > 0 {
		gm.AlphaMode = gltf.AlphaBlend
	}
	return gm
}

// newNode returns a node whose transform fields hold glTF's defaults
// rather than Go zero values.
func newNode(name string) *gltf.Node {
	return &gltf.Node{
		Name:     name,
		Matrix:   [16]float64(math3d.Identity()),
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

func ptr[T any](v T) *T {
	return &v
}
