// Package mocks holds hand-maintained gomock doubles for this core's
// narrow collaborator interfaces, written in the same style
// mockgen would generate.
package mocks

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	proof "github.com/babylonchain/avaproof/proof"
	verify "github.com/babylonchain/avaproof/verify"
)

// MockChainView is a mock of the verify.ChainView interface.
type MockChainView struct {
	ctrl     *gomock.Controller
	recorder *MockChainViewMockRecorder
}

// MockChainViewMockRecorder is the mock recorder for MockChainView.
type MockChainViewMockRecorder struct {
	mock *MockChainView
}

// NewMockChainView creates a new mock instance.
func NewMockChainView(ctrl *gomock.Controller) *MockChainView {
	mock := &MockChainView{ctrl: ctrl}
	mock.recorder = &MockChainViewMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected
// use.
func (m *MockChainView) EXPECT() *MockChainViewMockRecorder {
	return m.recorder
}

// ActiveTip mocks base method.
func (m *MockChainView) ActiveTip() (verify.BlockHeader, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveTip")
	ret0, _ := ret[0].(verify.BlockHeader)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// ActiveTip indicates an expected call of ActiveTip.
func (mr *MockChainViewMockRecorder) ActiveTip() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveTip", reflect.TypeOf((*MockChainView)(nil).ActiveTip))
}

// ActiveHeight mocks base method.
func (m *MockChainView) ActiveHeight() int32 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveHeight")
	ret0, _ := ret[0].(int32)
	return ret0
}

// ActiveHeight indicates an expected call of ActiveHeight.
func (mr *MockChainViewMockRecorder) ActiveHeight() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveHeight", reflect.TypeOf((*MockChainView)(nil).ActiveHeight))
}

// GetCoin mocks base method.
func (m *MockChainView) GetCoin(op proof.OutPoint) (verify.Coin, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCoin", op)
	ret0, _ := ret[0].(verify.Coin)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetCoin indicates an expected call of GetCoin.
func (mr *MockChainViewMockRecorder) GetCoin(op interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCoin", reflect.TypeOf((*MockChainView)(nil).GetCoin), op)
}

// StakeUtxoMinConfirmations mocks base method.
func (m *MockChainView) StakeUtxoMinConfirmations() uint32 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StakeUtxoMinConfirmations")
	ret0, _ := ret[0].(uint32)
	return ret0
}

// StakeUtxoMinConfirmations indicates an expected call of StakeUtxoMinConfirmations.
func (mr *MockChainViewMockRecorder) StakeUtxoMinConfirmations() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StakeUtxoMinConfirmations", reflect.TypeOf((*MockChainView)(nil).StakeUtxoMinConfirmations))
}
