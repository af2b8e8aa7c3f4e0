// Package kadmin drives asynchronous Kafka-style administrative
// requests — CreateTopics, DeleteTopics, CreatePartitions, AlterConfigs,
// and DescribeConfigs — to completion against a cluster, without ever
// blocking the caller's goroutine on network I/O.
//
// A Client is constructed with NewClient, given a brokerWaiter
// implementation such as ClusterView for broker and controller lookup,
// and closed with Close. Each submission function deep-copies its
// input, validates it, and enqueues a RequestItem that a single internal
// driver goroutine steps through a small state machine (waiting for a
// broker or controller connection, constructing the wire request,
// waiting for the response) until a result is delivered on the
// caller-owned reply channel.
package kadmin
