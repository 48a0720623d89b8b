// Package client provides a Solana RPC client built around the transaction
// submission and confirmation protocol.
//
// A [Client] wraps a [Transport] (by default solana-go's HTTP client) and
// adds the pieces a submission pipeline needs:
//
//   - blockhash selection backed by an optional [blockhash.Cache], so a
//     submission does not pay a network round-trip for a recency token
//   - signing, serialization and at-most-once dispatch via
//     [Client.SendTransaction] and [Client.SendRawTransaction]
//   - commitment-aware confirmation via [Client.ConfirmTransaction], which
//     polls signature status until the transaction reaches the target
//     commitment, its blockhash expires, or a wall-clock timeout elapses
//   - a catalog of read-only queries (balances, accounts, epoch and slot
//     info, fees, airdrops, simulation)
//
// Construct a client with New and functional options:
//
//	c := client.New("https://api.mainnet-beta.solana.com",
//		client.WithCommitment(rpc.CommitmentConfirmed),
//		client.WithBlockhashCache(blockhash.NewCache(0, 0)),
//		client.WithLogger(logger),
//	)
//
// All blocking operations take a context.Context; cancelling it abandons the
// local wait but never un-sends a transaction that already reached the node.
package client
