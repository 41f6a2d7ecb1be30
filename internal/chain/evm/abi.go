package evm

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// The subset of the DAO interface the voter uses. The DAO reverts with
// Error(string); the ERC20 errors surface when its transferFrom fails.
const daoABIJSON = `[
  {"type":"function","name":"getTotalProposals","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getProposal","stateMutability":"view",
   "inputs":[{"name":"_proposalId","type":"uint256"}],
   "outputs":[
     {"name":"id","type":"uint256"},
     {"name":"title","type":"string"},
     {"name":"description","type":"string"},
     {"name":"createdAt","type":"uint256"},
     {"name":"votingDeadline","type":"uint256"},
     {"name":"executed","type":"bool"},
     {"name":"yesVotes","type":"uint256"},
     {"name":"noVotes","type":"uint256"},
     {"name":"abstainVotes","type":"uint256"}]},
  {"type":"function","name":"isVotingActive","stateMutability":"view",
   "inputs":[{"name":"_proposalId","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"calculateVoteCost","stateMutability":"pure",
   "inputs":[{"name":"_votes","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getProposalVotes","stateMutability":"view",
   "inputs":[{"name":"_proposalId","type":"uint256"}],
   "outputs":[{"name":"","type":"tuple[]","components":[
     {"name":"voter","type":"address"},
     {"name":"choice","type":"uint8"},
     {"name":"tokensSpent","type":"uint256"}]}]},
  {"type":"function","name":"vote","stateMutability":"nonpayable",
   "inputs":[
     {"name":"_proposalId","type":"uint256"},
     {"name":"_votes","type":"uint256"},
     {"name":"_choice","type":"uint8"}],
   "outputs":[]},
  {"type":"error","name":"ERC20InsufficientAllowance","inputs":[
     {"name":"spender","type":"address"},{"name":"allowance","type":"uint256"},{"name":"needed","type":"uint256"}]},
  {"type":"error","name":"ERC20InsufficientBalance","inputs":[
     {"name":"sender","type":"address"},{"name":"balance","type":"uint256"},{"name":"needed","type":"uint256"}]}
]`

const erc20ABIJSON = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"allowance","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"approve","stateMutability":"nonpayable",
   "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"error","name":"ERC20InvalidSpender","inputs":[{"name":"spender","type":"address"}]},
  {"type":"error","name":"ERC20InvalidApprover","inputs":[{"name":"approver","type":"address"}]}
]`

var (
	parseOnce sync.Once
	daoABI    abi.ABI
	erc20ABI  abi.ABI
	parseErr  error
)

func contractABIs() (abi.ABI, abi.ABI, error) {
	parseOnce.Do(func() {
		if daoABI, parseErr = abi.JSON(strings.NewReader(daoABIJSON)); parseErr != nil {
			parseErr = errors.Wrap(parseErr, "failed to parse DAO ABI")
			return
		}
		if erc20ABI, parseErr = abi.JSON(strings.NewReader(erc20ABIJSON)); parseErr != nil {
			parseErr = errors.Wrap(parseErr, "failed to parse ERC20 ABI")
		}
	})
	return daoABI, erc20ABI, parseErr
}
