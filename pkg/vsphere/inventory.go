package vsphere

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/yurykabanov/snapaudit/pkg/appcontext"
	"github.com/yurykabanov/snapaudit/pkg/domain"
)

const (
	bytesPerMB = float64(1 << 20)
	bytesPerGB = float64(1 << 30)
)

var snapshotProperties = []string{"name", "snapshot", "layoutEx"}

// Inventory adapts a vSphere connection to the narrow view the auditor
// consumes. It holds no state besides the client: every call re-resolves
// managed objects by name.
type Inventory struct {
	logger logrus.FieldLogger

	client *govmomi.Client
}

func NewInventory(logger logrus.FieldLogger, client *govmomi.Client) *Inventory {
	return &Inventory{
		logger: logger,

		client: client,
	}
}

func (i *Inventory) ListVirtualMachines(ctx context.Context) ([]string, error) {
	vms, err := i.retrieveAll(ctx, []string{"name"})
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve virtual machines")
	}

	names := make([]string, 0, len(vms))
	for _, vm := range vms {
		names = append(names, vm.Name)
	}

	return names, nil
}

func (i *Inventory) ListSnapshots(ctx context.Context, vmName string) ([]domain.SnapshotRecord, error) {
	vm, err := i.findByName(ctx, vmName, snapshotProperties)
	if err != nil {
		return nil, err
	}

	if vm.Snapshot == nil {
		return nil, nil
	}

	sizes := snapshotSizes(vm.LayoutEx)

	var records []domain.SnapshotRecord
	for _, node := range vm.Snapshot.RootSnapshotList {
		records = appendSnapshotTree(records, vmName, node, sizes)
	}

	return records, nil
}

// DeleteSnapshot asks the platform to remove the named snapshot. Only task
// submission is awaited, not the deletion itself.
func (i *Inventory) DeleteSnapshot(ctx context.Context, vmName, snapshotName string) error {
	vm, err := i.findByName(ctx, vmName, []string{"name"})
	if err != nil {
		return err
	}

	obj := object.NewVirtualMachine(i.client.Client, vm.Self)

	_, err = obj.RemoveSnapshot(ctx, snapshotName, false, nil)
	if err != nil {
		return errors.Wrapf(err, "unable to delete snapshot '%s' of '%s'", snapshotName, vmName)
	}

	appcontext.LoggerFromContext(i.logger, ctx).Debug("Snapshot deletion task submitted")

	return nil
}

func (i *Inventory) retrieveAll(ctx context.Context, properties []string) ([]mo.VirtualMachine, error) {
	m := view.NewManager(i.client.Client)

	v, err := m.CreateContainerView(ctx, i.client.ServiceContent.RootFolder, []string{"VirtualMachine"}, true)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = v.Destroy(ctx)
	}()

	var vms []mo.VirtualMachine
	if err := v.Retrieve(ctx, []string{"VirtualMachine"}, properties, &vms); err != nil {
		return nil, err
	}

	return vms, nil
}

func (i *Inventory) findByName(ctx context.Context, vmName string, properties []string) (*mo.VirtualMachine, error) {
	vms, err := i.retrieveAll(ctx, properties)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to retrieve virtual machine '%s'", vmName)
	}

	for idx := range vms {
		if vms[idx].Name == vmName {
			return &vms[idx], nil
		}
	}

	return nil, errors.Errorf("virtual machine '%s' not found", vmName)
}

// appendSnapshotTree flattens one snapshot subtree depth-first. Every value
// the helper needs is an explicit parameter.
func appendSnapshotTree(
	records []domain.SnapshotRecord,
	vmName string,
	node types.VirtualMachineSnapshotTree,
	sizes map[types.ManagedObjectReference]int64,
) []domain.SnapshotRecord {
	bytes := sizes[node.Snapshot]

	records = append(records, domain.SnapshotRecord{
		VMName:       vmName,
		SnapshotName: node.Name,
		CreatedAt:    node.CreateTime,
		SizeGB:       float64(bytes) / bytesPerGB,
		SizeMB:       float64(bytes) / bytesPerMB,
	})

	for _, child := range node.ChildSnapshotList {
		records = appendSnapshotTree(records, vmName, child, sizes)
	}

	return records
}

// snapshotSizes sums the storage attributed to each snapshot in the VM file
// layout: its data file plus the delta disks created when it was taken
// (the last unit of every disk chain).
func snapshotSizes(layout *types.VirtualMachineFileLayoutEx) map[types.ManagedObjectReference]int64 {
	sizes := make(map[types.ManagedObjectReference]int64)

	if layout == nil {
		return sizes
	}

	fileSizes := make(map[int32]int64, len(layout.File))
	for _, file := range layout.File {
		fileSizes[file.Key] = file.Size
	}

	for _, snapshot := range layout.Snapshot {
		total := fileSizes[snapshot.DataKey]

		for _, disk := range snapshot.Disk {
			if len(disk.Chain) == 0 {
				continue
			}

			for _, key := range disk.Chain[len(disk.Chain)-1].FileKey {
				total += fileSizes[key]
			}
		}

		sizes[snapshot.Key] = total
	}

	return sizes
}
