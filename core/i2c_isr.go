package core

// controlFlags are the control bits recomputed on every interrupt exit.
const controlFlags = CtrlAck | CtrlInterrupt | CtrlStop | CtrlStart

// HandleIRQ services one bus status-change interrupt. Target code calls it
// from the interrupt handler of the corresponding I2C block; it must return
// before the peripheral times out and must never block.
//
// The switch mirrors the controller status codes one to one. Control-bit
// decisions accumulate in a clear-mask: every flag starts marked for
// clearing, and a branch keeps a flag asserted by removing it from the mask.
// The final write-back applies the set view and the clear view as one
// conceptual update, so no flag survives an interrupt unless re-asserted.
func HandleIRQ(bus BusID) {
	ib := &buses[bus]
	port := MustI2CPort()

	cclr := controlFlags
	notifyMaster := false
	notifySlave := false

	switch port.Status(bus) {
	case StatStartSent, StatRepeatedStartSent:
		ib.rxCnt = 0
		ib.txCnt = 0
		// Send the peer address. With nothing to transmit the low bit is
		// set, turning the transaction into a receive.
		dir := byte(0)
		if ib.msg.txLen == 0 {
			dir = 1
		}
		port.WriteData(bus, ib.msg.addr<<1|dir)

	case StatAddrWriteAck:
		// Address acknowledged, send the first payload byte.
		port.WriteData(bus, ib.msg.txData[ib.txCnt])
		ib.txCnt++

	case StatAddrWriteNack:
		cclr &^= CtrlStop
		ib.msg.err = ErrAddrNackWrite
		notifyMaster = true

	case StatDataWriteAck:
		if ib.txCnt != ib.msg.txLen {
			port.WriteData(bus, ib.msg.txData[ib.txCnt])
			ib.txCnt++
		} else {
			// Nothing left to transmit: finish the transaction and wake
			// the caller.
			cclr &^= CtrlStop
			notifyMaster = true
		}

	case StatDataWriteNack:
		cclr &^= CtrlStop
		ib.msg.err = ErrDataNackWrite
		notifyMaster = true

	case StatAddrReadAck:
		// SLA+R acknowledged. Acknowledge further bytes only when more than
		// one is expected; a single-byte read must NACK the byte it gets.
		if ib.msg.rxLen > 1 {
			cclr &^= CtrlAck
		}

	case StatDataReadAck:
		if ib.rxCnt < MaxMsgLen-1 {
			ib.msg.rxData[ib.rxCnt] = port.ReadData(bus)
			ib.rxCnt++
			// Keep acknowledging until the next byte is the last expected
			// one, which the peripheral must NACK.
			if ib.rxCnt != ib.msg.rxLen-1 {
				cclr &^= CtrlAck
			}
		}

	case StatDataReadNack:
		// Final byte of a master read.
		ib.msg.rxData[ib.rxCnt] = port.ReadData(bus)
		ib.rxCnt++
		cclr &^= CtrlStop
		notifyMaster = true

	case StatAddrReadNack:
		cclr &^= CtrlStop
		ib.msg.err = ErrAddrNackRead
		notifyMaster = true

	case StatSlaveAddressed, StatArbLostSlaveAddressed:
		ib.msg.bus = bus
		ib.rxCnt = 0
		if ib.mode == IPMB {
			// IPMB framing counts the addressed slave address as byte 0 of
			// the message; the address register supplies it.
			ib.msg.rxData[ib.rxCnt] = port.OwnAddress(bus)
			cclr &^= CtrlAck
			ib.rxCnt++
		}

	case StatSlaveDataAck:
		if ib.rxCnt < MaxMsgLen {
			ib.msg.rxData[ib.rxCnt] = port.ReadData(bus)
			ib.rxCnt++
			cclr &^= CtrlAck
		}
		// A full buffer silently stops storing; downstream framing tolerates
		// the truncation.

	case StatSlaveDataNack:
		cclr &^= CtrlAck
		ib.msg.err = ErrSlaveOverrun
		// Not terminal: reception continues until STOP or repeated START.

	case StatSlaveStop:
		ib.msg.rxLen = ib.rxCnt
		// An IPMB reception always starts with the synthetic address byte,
		// which alone is not a message.
		if ib.rxCnt > 0 && ib.mode == LocalMaster {
			notifySlave = true
		}
		if ib.rxCnt > 1 && ib.mode == IPMB {
			notifySlave = true
		}
		cclr &^= CtrlAck

	case StatBusError:
		// Force a stop and resynchronize on the next START. Nobody is
		// notified; an in-flight caller rides out its unbounded wait.
		cclr &^= CtrlStop

	default:
		// Unhandled states, including all slave-transmitter codes, change
		// nothing.
	}

	// Requesting a stop also re-arms slave acknowledgment so the interface
	// keeps answering its own address afterwards. In every other case ACK
	// lives only as long as a branch above asserted it this interrupt.
	if cclr&CtrlStop == 0 {
		cclr &^= CtrlAck
	}
	port.SetControl(bus, cclr^controlFlags)
	port.ClearControl(bus, cclr)

	if notifyMaster {
		publishMasterTrace(ib)
		ib.masterWake.raise()
	}
	if notifySlave {
		publishSlaveTrace(ib)
		ib.slaveWake.raise()
	}
	if notifyMaster || notifySlave {
		// The woken task must be runnable with minimal latency.
		yieldFromISR()
	}
}
