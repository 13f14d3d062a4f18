// Package pacmanrl trains a small feed-forward policy
// network to play MsPacman-style frame environments using
// REINFORCE, with a hand-written backward pass and a
// batched RMSProp weight update.
package pacmanrl
