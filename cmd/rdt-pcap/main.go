// Command rdt-pcap decodes captured RDT traffic from a pcap file and
// prints per-axis statistics. Useful for inspecting sensor behaviour
// offline from a Wireshark capture of the UDP exchange.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/banshee-data/netft/internal/ftstats"
	"github.com/banshee-data/netft/internal/netft"
)

var (
	pcapFile        = flag.String("pcap", "", "Path to pcap capture file (required)")
	udpPort         = flag.Int("udp-port", netft.DefaultUDPPort, "Sensor RDT UDP port to filter on")
	countsPerForce  = flag.Float64("counts-per-force", 1000000, "Raw counts per force unit")
	countsPerTorque = flag.Float64("counts-per-torque", 1000, "Raw counts per torque unit")
)

func main() {
	flag.Parse()

	if *pcapFile == "" {
		log.Fatal("-pcap is required")
	}
	scale := netft.ScaleFactors{CountsPerForce: *countsPerForce, CountsPerTorque: *countsPerTorque}
	if err := scale.Validate(); err != nil {
		log.Fatalf("invalid scale factors: %v", err)
	}

	f, err := os.Open(*pcapFile)
	if err != nil {
		log.Fatalf("failed to open capture: %v", err)
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		log.Fatalf("failed to read pcap header: %v", err)
	}

	var (
		requests  int
		responses int
		malformed int
		readings  []netft.Reading
	)

	source := gopacket.NewPacketSource(r, r.LinkType())
	for packet := range source.Packets() {
		udp, ok := packet.TransportLayer().(*layers.UDP)
		if !ok {
			continue
		}

		switch {
		case int(udp.DstPort) == *udpPort:
			requests++
		case int(udp.SrcPort) == *udpPort:
			raw, err := netft.DecodeRDTResponse(udp.Payload)
			if err != nil {
				malformed++
				continue
			}
			responses++
			readings = append(readings, raw.Scale(scale))
		}
	}

	fmt.Printf("requests: %d  responses: %d  malformed: %d\n", requests, responses, malformed)
	if len(readings) == 0 {
		return
	}

	fmt.Printf("%-4s %8s %12s %12s %12s %12s\n", "axis", "count", "mean", "stddev", "min", "max")
	for _, s := range ftstats.Summarize(readings) {
		fmt.Printf("%-4s %8d %12.4f %12.4f %12.4f %12.4f\n",
			s.Axis, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}
}
