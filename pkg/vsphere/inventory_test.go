package vsphere

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vmware/govmomi/vim25/types"
)

func snapshotRef(value string) types.ManagedObjectReference {
	return types.ManagedObjectReference{Type: "VirtualMachineSnapshot", Value: value}
}

func TestAppendSnapshotTree_FlattensDepthFirst(t *testing.T) {
	createdAt, _ := time.Parse(time.RFC3339, "2019-02-01T00:00:00Z")

	root := types.VirtualMachineSnapshotTree{
		Snapshot:   snapshotRef("snapshot-1"),
		Name:       "base",
		CreateTime: createdAt,
		ChildSnapshotList: []types.VirtualMachineSnapshotTree{
			{
				Snapshot:   snapshotRef("snapshot-2"),
				Name:       "pre-upgrade",
				CreateTime: createdAt.Add(24 * time.Hour),
				ChildSnapshotList: []types.VirtualMachineSnapshotTree{
					{
						Snapshot:   snapshotRef("snapshot-3"),
						Name:       "post-upgrade",
						CreateTime: createdAt.Add(48 * time.Hour),
					},
				},
			},
			{
				Snapshot:   snapshotRef("snapshot-4"),
				Name:       "sibling",
				CreateTime: createdAt.Add(72 * time.Hour),
			},
		},
	}

	sizes := map[types.ManagedObjectReference]int64{
		snapshotRef("snapshot-1"): 1 << 30,
		snapshotRef("snapshot-2"): 2 << 30,
	}

	records := appendSnapshotTree(nil, "web-01", root, sizes)

	assert.Len(t, records, 4)

	assert.Equal(t, "base", records[0].SnapshotName)
	assert.Equal(t, "pre-upgrade", records[1].SnapshotName)
	assert.Equal(t, "post-upgrade", records[2].SnapshotName)
	assert.Equal(t, "sibling", records[3].SnapshotName)

	for _, record := range records {
		assert.Equal(t, "web-01", record.VMName)
	}

	assert.Equal(t, 1.0, records[0].SizeGB)
	assert.Equal(t, 1024.0, records[0].SizeMB)
	assert.Equal(t, 2.0, records[1].SizeGB)
	assert.Equal(t, createdAt, records[0].CreatedAt)

	// Unknown snapshot keys resolve to zero size, not an error.
	assert.Equal(t, 0.0, records[2].SizeGB)
}

func TestSnapshotSizes(t *testing.T) {
	layout := &types.VirtualMachineFileLayoutEx{
		File: []types.VirtualMachineFileLayoutExFileInfo{
			{Key: 1, Size: 100},    // snapshot data file
			{Key: 2, Size: 5000},   // base disk
			{Key: 3, Size: 700},    // delta disk
			{Key: 4, Size: 900000}, // unrelated file
		},
		Snapshot: []types.VirtualMachineFileLayoutExSnapshotLayout{
			{
				Key:     snapshotRef("snapshot-1"),
				DataKey: 1,
				Disk: []types.VirtualMachineFileLayoutExDiskLayout{
					{
						Key: 2000,
						Chain: []types.VirtualMachineFileLayoutExDiskUnit{
							{FileKey: []int32{2}},
							{FileKey: []int32{3}},
						},
					},
				},
			},
		},
	}

	sizes := snapshotSizes(layout)

	// Data file plus the top of the disk chain, base disks excluded.
	assert.Equal(t, int64(800), sizes[snapshotRef("snapshot-1")])
}

func TestSnapshotSizes_NilLayout(t *testing.T) {
	sizes := snapshotSizes(nil)

	assert.NotNil(t, sizes)
	assert.Len(t, sizes, 0)
}
