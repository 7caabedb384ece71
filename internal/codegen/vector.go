package codegen

import "fmt"

// GenerateVectorReactive lowers one reactive stream operator to a
// vector-intrinsic kernel. It requires a RISC-V target with the vector
// extension enabled; each kernel negotiates the hardware vector length
// per iteration with vsetvli, so the same text runs on any VLEN.
func (g *Generator) GenerateVectorReactive(operator string) (string, error) {
	if !g.target.IsRiscV() || !g.target.Ext().V {
		return "", &CapabilityError{Message: "RISC-V Vector extension not enabled"}
	}

	switch operator {
	case "map":
		return vectorMap, nil
	case "filter":
		return vectorFilter, nil
	case "reduce":
		return vectorReduce, nil
	case "scan":
		return vectorScan, nil
	case "zip":
		return vectorZip, nil
	case "merge":
		return vectorMerge, nil
	default:
		return "", &WellFormednessError{Message: fmt.Sprintf("Unsupported vector operation: %s", operator)}
	}
}

const vectorMap = `; RISC-V Vector-optimized reactive map
; Applies the mapping operation to vector-length chunks of the stream.

define void @vector_map_i32(i32* %dst, i32* %src, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr i32, i32* %src, i64 %i
  %chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %src.ptr, i64 %vl)
  %mapped = call <vscale x 4 x i32> @llvm.riscv.vadd.nxv4i32(<vscale x 4 x i32> undef, <vscale x 4 x i32> %chunk, i32 1, i64 %vl)
  %dst.ptr = getelementptr i32, i32* %dst, i64 %i
  call void @llvm.riscv.vse.nxv4i32(<vscale x 4 x i32> %mapped, i32* %dst.ptr, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  ret void
}

define void @vector_map_f32(float* %dst, float* %src, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr float, float* %src, i64 %i
  %chunk = call <vscale x 4 x float> @llvm.riscv.vle.nxv4f32(<vscale x 4 x float> undef, float* %src.ptr, i64 %vl)
  %mapped = call <vscale x 4 x float> @llvm.riscv.vfadd.nxv4f32(<vscale x 4 x float> undef, <vscale x 4 x float> %chunk, float 1.0, i64 %vl)
  %dst.ptr = getelementptr float, float* %dst, i64 %i
  call void @llvm.riscv.vse.nxv4f32(<vscale x 4 x float> %mapped, float* %dst.ptr, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  ret void
}
`

const vectorFilter = `; RISC-V Vector-optimized reactive filter
; Keeps elements below the threshold. Output length is data-dependent, so
; the kernel returns the count of elements that passed.

define i64 @vector_filter_i32(i32* %dst, i32* %src, i64 %count, i32 %threshold) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %passed = phi i64 [ 0, %entry ], [ %passed.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr i32, i32* %src, i64 %i
  %chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %src.ptr, i64 %vl)
  %mask = call <vscale x 4 x i1> @llvm.riscv.vmslt.nxv4i32(<vscale x 4 x i32> %chunk, i32 %threshold, i64 %vl)
  %kept = call <vscale x 4 x i32> @llvm.riscv.vcompress.nxv4i32(<vscale x 4 x i32> %chunk, <vscale x 4 x i1> %mask, i64 %vl)
  %n = call i64 @llvm.riscv.vcpop.nxv4i1(<vscale x 4 x i1> %mask, i64 %vl)
  %dst.ptr = getelementptr i32, i32* %dst, i64 %passed
  call void @llvm.riscv.vse.nxv4i32(<vscale x 4 x i32> %kept, i32* %dst.ptr, i64 %n)
  %passed.next = add i64 %passed, %n
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  %total = phi i64 [ %passed.next, %vector.body ]
  ret i64 %total
}
`

const vectorReduce = `; RISC-V Vector-optimized reactive reduce
; Accumulates a chunk reduction into a scalar across iterations.

define i32 @vector_reduce_sum_i32(i32* %src, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %acc = phi i32 [ 0, %entry ], [ %acc.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr i32, i32* %src, i64 %i
  %chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %src.ptr, i64 %vl)
  %acc.next = call i32 @llvm.riscv.vredsum.nxv4i32(<vscale x 4 x i32> %chunk, i32 %acc, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  %result = phi i32 [ %acc.next, %vector.body ]
  ret i32 %result
}

define i32 @vector_reduce_max_i32(i32* %src, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %acc = phi i32 [ -2147483648, %entry ], [ %acc.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr i32, i32* %src, i64 %i
  %chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %src.ptr, i64 %vl)
  %acc.next = call i32 @llvm.riscv.vredmax.nxv4i32(<vscale x 4 x i32> %chunk, i32 %acc, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  %result = phi i32 [ %acc.next, %vector.body ]
  ret i32 %result
}
`

const vectorScan = `; RISC-V Vector-optimized reactive scan
; Running prefix sum. The carry from each chunk slides into the next so
; the prefix sum stays continuous across chunk boundaries.

define void @vector_scan_i32(i32* %dst, i32* %src, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %carry = phi i32 [ 0, %entry ], [ %carry.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %src.ptr = getelementptr i32, i32* %src, i64 %i
  %chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %src.ptr, i64 %vl)
  %shifted = call <vscale x 4 x i32> @llvm.riscv.vslide1up.nxv4i32(<vscale x 4 x i32> undef, <vscale x 4 x i32> %chunk, i32 %carry, i64 %vl)
  %prefix = call <vscale x 4 x i32> @llvm.riscv.vadd.vx.nxv4i32(<vscale x 4 x i32> undef, <vscale x 4 x i32> %shifted, i32 %carry, i64 %vl)
  %dst.ptr = getelementptr i32, i32* %dst, i64 %i
  call void @llvm.riscv.vse.nxv4i32(<vscale x 4 x i32> %prefix, i32* %dst.ptr, i64 %vl)
  %carry.next = call i32 @llvm.riscv.vredsum.nxv4i32(<vscale x 4 x i32> %chunk, i32 %carry, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  ret void
}
`

const vectorZip = `; RISC-V Vector-optimized reactive zip
; Interleaves two vectors into destination pairs with a segmented store.

define void @vector_zip_i32(i32* %dst, i32* %a, i32* %b, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  ; Load both vectors
  %a.ptr = getelementptr i32, i32* %a, i64 %i
  %a.chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %a.ptr, i64 %vl)
  %b.ptr = getelementptr i32, i32* %b, i64 %i
  %b.chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %b.ptr, i64 %vl)
  %pair = shl i64 %i, 1
  %dst.ptr = getelementptr i32, i32* %dst, i64 %pair
  call void @llvm.riscv.vsseg2.nxv4i32(<vscale x 4 x i32> %a.chunk, <vscale x 4 x i32> %b.chunk, i32* %dst.ptr, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  ret void
}
`

const vectorMerge = `; RISC-V Vector-optimized reactive merge
; Chooses per element between two streams under a selector mask.

define void @vector_merge_i32(i32* %dst, i32* %a, i32* %b, i8* %selector, i64 %count) {
entry:
  br label %vector.body

vector.body:
  %i = phi i64 [ 0, %entry ], [ %i.next, %vector.body ]
  %remaining = sub i64 %count, %i
  %vl = call i64 @llvm.riscv.vsetvli(i64 %remaining, i64 2, i64 1)
  %a.ptr = getelementptr i32, i32* %a, i64 %i
  %a.chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %a.ptr, i64 %vl)
  %b.ptr = getelementptr i32, i32* %b, i64 %i
  %b.chunk = call <vscale x 4 x i32> @llvm.riscv.vle.nxv4i32(<vscale x 4 x i32> undef, i32* %b.ptr, i64 %vl)
  %sel.byte = lshr i64 %i, 3
  %sel.ptr = getelementptr i8, i8* %selector, i64 %sel.byte
  %mask = call <vscale x 4 x i1> @llvm.riscv.vlm.nxv4i1(i8* %sel.ptr, i64 %vl)
  %merged = call <vscale x 4 x i32> @llvm.riscv.vmerge.nxv4i32(<vscale x 4 x i32> %b.chunk, <vscale x 4 x i32> %a.chunk, <vscale x 4 x i1> %mask, i64 %vl)
  %dst.ptr = getelementptr i32, i32* %dst, i64 %i
  call void @llvm.riscv.vse.nxv4i32(<vscale x 4 x i32> %merged, i32* %dst.ptr, i64 %vl)
  %i.next = add i64 %i, %vl
  %done = icmp uge i64 %i.next, %count
  br i1 %done, label %exit, label %vector.body

exit:
  ret void
}
`

// VectorOperators lists the reactive operators with vectorized kernels.
var VectorOperators = []string{"map", "filter", "reduce", "scan", "zip", "merge"}
