package game

import "fmt"

// Tensor is a row-major view over part of a caller-owned buffer.
type Tensor struct {
	data  []float32
	shape []int
}

// Shape returns the view's dimensions.
func (t Tensor) Shape() []int { return t.shape }

// Data returns the underlying slice of the caller's buffer.
func (t Tensor) Data() []float32 { return t.data }

// Set writes v at the given index.
func (t Tensor) Set(v float32, idx ...int) {
	t.data[t.offset(idx)] = v
}

// At reads the value at the given index.
func (t Tensor) At(idx ...int) float32 {
	return t.data[t.offset(idx)]
}

func (t Tensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("goofspiel: tensor index has %d dims, want %d", len(idx), len(t.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= t.shape[d] {
			panic(fmt.Sprintf("goofspiel: tensor index %d out of range [0, %d) in dim %d", i, t.shape[d], d))
		}
		off = off*t.shape[d] + i
	}
	return off
}

// Allocator hands out named tensor views to an observer.
type Allocator interface {
	Get(name string, shape []int) Tensor
}

// ContiguousAllocator lays tensors end to end in a caller-provided buffer.
// Each segment is zeroed when it is handed out; the buffer is never grown.
type ContiguousAllocator struct {
	buf    []float32
	offset int
}

// NewContiguousAllocator wraps buf.
func NewContiguousAllocator(buf []float32) *ContiguousAllocator {
	return &ContiguousAllocator{buf: buf}
}

// Get returns the next len(shape)-product values of the buffer.
func (a *ContiguousAllocator) Get(name string, shape []int) Tensor {
	size := shapeSize(shape)
	if a.offset+size > len(a.buf) {
		panic(fmt.Sprintf("goofspiel: tensor %q needs %d values at offset %d, buffer holds %d", name, size, a.offset, len(a.buf)))
	}
	data := a.buf[a.offset : a.offset+size : a.offset+size]
	clear(data)
	a.offset += size
	return Tensor{data: data, shape: shape}
}

// Offset is the number of values handed out so far.
func (a *ContiguousAllocator) Offset() int { return a.offset }

// TensorBlock is one named piece of an observation tensor.
type TensorBlock struct {
	Name   string
	Shape  []int
	Offset int
}

// Size is the number of values in the block.
func (b TensorBlock) Size() int { return shapeSize(b.Shape) }

func shapeSize(shape []int) int {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return size
}
