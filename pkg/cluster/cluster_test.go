package cluster

import (
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/nodepool-sched/leafqueue/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleApplication_PrioritiesDescending(t *testing.T) {
	app := NewSimpleApplication("alice", time.Unix(0, 0))
	app.AddRequest(5, &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 1})
	app.AddRequest(10, &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 1})
	app.AddRequest(1, &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 1})

	assert.Equal(t, []Priority{10, 5, 1}, app.Priorities())
}

func TestSimpleApplication_AllocateDecrementsRequest(t *testing.T) {
	app := NewSimpleApplication("alice", time.Unix(0, 0))
	req := &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 2}
	app.AddRequest(1, req)

	cid := app.NewContainerID()
	container := &Container{ID: cid, HostName: "h1", Capability: resource.New(1)}
	app.Allocate(OffSwitch, nil, 1, req, []*Container{container})

	assert.Equal(t, 1, req.NumContainers)

	assert.True(t, app.CompletedContainer(container))
	assert.Empty(t, app.allocated)
}

func TestSimpleApplication_CompletedContainer_UnknownIsNoop(t *testing.T) {
	app := NewSimpleApplication("alice", time.Unix(0, 0))
	req := &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 1}
	app.AddRequest(1, req)

	granted := &Container{ID: app.NewContainerID(), Capability: resource.New(1)}
	app.Allocate(OffSwitch, nil, 1, req, []*Container{granted})

	bogus := &Container{ID: ContainerID{AppID: app.ID(), Seq: 999}, Capability: resource.New(1)}
	assert.False(t, app.CompletedContainer(bogus), "a container never granted must not match")
	assert.Len(t, app.allocated, 1, "bookkeeping for the real container is untouched")

	assert.True(t, app.CompletedContainer(granted))
	assert.False(t, app.CompletedContainer(granted), "completing the same container twice is a no-op the second time")
}

func TestSimpleApplication_AllocateNeverGoesNegative(t *testing.T) {
	app := NewSimpleApplication("alice", time.Unix(0, 0))
	req := &ResourceRequest{Location: OffSwitchLocation, Capability: resource.New(1), NumContainers: 1}
	app.AddRequest(1, req)

	c1 := &Container{ID: app.NewContainerID(), Capability: resource.New(1)}
	c2 := &Container{ID: app.NewContainerID(), Capability: resource.New(1)}
	app.Allocate(OffSwitch, nil, 1, req, []*Container{c1, c2})

	assert.Equal(t, 0, req.NumContainers)
}

func TestResourceRequest_HasCapacity(t *testing.T) {
	var nilReq *ResourceRequest
	assert.False(t, nilReq.HasCapacity())

	req := &ResourceRequest{NumContainers: 0}
	assert.False(t, req.HasCapacity())

	req.NumContainers = 1
	assert.True(t, req.HasCapacity())
}

func TestSimpleNode_AllocateReducesAvailability(t *testing.T) {
	node := NewSimpleNode(peer.ID("node-1"), "host-1", "rack-1", resource.New(10))
	container := &Container{ID: ContainerID{AppID: "app", Seq: 1}, Capability: resource.New(4)}

	node.AllocateContainer("app", []*Container{container})
	assert.Equal(t, resource.New(6), node.AvailableResource())

	node.Release(resource.New(4))
	assert.Equal(t, resource.New(10), node.AvailableResource())
}

func TestAggregatingParent_TalliesEvents(t *testing.T) {
	parent := NewAggregatingParent("root", 1.0)
	app := NewSimpleApplication("alice", time.Unix(0, 0))

	parent.SubmitApplication(app, "alice")
	parent.CompletedContainer(resource.New(100), &Container{}, app)
	parent.FinishApplication(app)

	submitted, finished, completed := parent.Counts()
	assert.Equal(t, 1, submitted)
	assert.Equal(t, 1, finished)
	assert.Equal(t, 1, completed)
}

func TestHMACSecretManager_DeterministicPerIdentifier(t *testing.T) {
	mgr := NewHMACSecretManager([]byte("master-key"))

	p1, err := mgr.CreatePassword([]byte("container-1"))
	require.NoError(t, err)
	p2, err := mgr.CreatePassword([]byte("container-1"))
	require.NoError(t, err)
	p3, err := mgr.CreatePassword([]byte("container-2"))
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.NotEqual(t, p1, p3)
}

func TestLocalityType_String(t *testing.T) {
	assert.Equal(t, "DATA_LOCAL", DataLocal.String())
	assert.Equal(t, "RACK_LOCAL", RackLocal.String())
	assert.Equal(t, "OFF_SWITCH", OffSwitch.String())
}
