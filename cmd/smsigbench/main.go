// Command smsigbench is a minimal benchmark harness for SMSig. It is
// explicitly out of spec scope (spec.md §6 calls benchmarking an
// "external collaborator, specified but not built out") and is kept to
// stdlib flag parsing only.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/smsig/smsig"
)

func main() {
	paramName := flag.String("params", "small", "parameter set: small or large")
	signers := flag.Int("signers", 8, "number of signers to aggregate")
	message := flag.String("message", "this is the message to sign", "message to sign")
	flag.Parse()

	pp, err := smsig.ParamSetFromName(*paramName)
	if err != nil {
		log.Fatalf("smsigbench: %s", err)
	}

	var setupSeed [32]byte
	if _, err := rand.Read(setupSeed[:]); err != nil {
		log.Fatalf("smsigbench: %s", err)
	}
	param := smsig.Setup(pp, setupSeed)

	m := []byte(*message)
	pks := make([]*smsig.SMSigPK, *signers)
	sigs := make([]*smsig.SMSignature, *signers)
	roots := make([]*smsig.SmallPoly, *signers)

	t0 := time.Now()
	for i := 0; i < *signers; i++ {
		var seed [32]byte
		if _, err := rand.Read(seed[:]); err != nil {
			log.Fatalf("smsigbench: %s", err)
		}
		pk, sk, err := smsig.KeyGen(param, seed)
		if err != nil {
			log.Fatalf("smsigbench: keygen: %s", err)
		}
		sig, err := smsig.Sign(sk, 0, m)
		if err != nil {
			log.Fatalf("smsigbench: sign: %s", err)
		}
		pks[i], sigs[i], roots[i] = pk, sig, pk.Root
	}
	keygenSignElapsed := time.Since(t0)

	t1 := time.Now()
	aggSig, err := smsig.Aggregate(pp, sigs, roots)
	if err != nil {
		log.Fatalf("smsigbench: aggregate: %s", err)
	}
	aggregateElapsed := time.Since(t1)

	t2 := time.Now()
	ok := smsig.BatchVerify(param, pks, m, aggSig)
	batchVerifyElapsed := time.Since(t2)

	fmt.Printf("params=%s signers=%d\n", pp, *signers)
	fmt.Printf("keygen+sign (%d signers): %s\n", *signers, keygenSignElapsed)
	fmt.Printf("aggregate:                %s\n", aggregateElapsed)
	fmt.Printf("batch verify:             %s (ok=%v)\n", batchVerifyElapsed, ok)
}
