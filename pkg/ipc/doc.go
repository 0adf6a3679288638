// Package ipc carries shape sets from the editor to the player over a local
// TCP socket.
//
// Protocol: one connection per message. The sender writes a JSON array of
// Wire Records and closes its write side; the receiver reads to end of stream
// and decodes the accumulated bytes as one message. There is no length
// prefix, so a message boundary is a connection boundary.
//
// Known limitation: the server handles one connection at a time and reads
// without a deadline. A peer that connects and never closes stalls every
// later sender, whose connections wait in the listen backlog. This is kept
// for compatibility with existing senders; adding framing or read deadlines
// would change the protocol.
package ipc

// DefaultAddress is the well-known loopback address of the player.
const DefaultAddress = "localhost:12345"
